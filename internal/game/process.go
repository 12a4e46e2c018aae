package game

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"sync"
)

const eventBuffer = 64

// Options configures the server process connection.
type Options struct {
	Command    string
	Args       []string
	Dir        string
	ServerType string
}

// Process runs the Minecraft server as a child process, scanning its
// stdout for events and writing console commands to its stdin.
type Process struct {
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	events chan Event
	logger *slog.Logger

	mu        sync.Mutex
	closeOnce sync.Once
	closeErr  error
}

// Launch starts the server process and begins scanning its output.
func Launch(opts Options, logger *slog.Logger) (*Process, error) {
	if logger == nil {
		logger = slog.Default()
	}

	cmd := exec.Command(opts.Command, opts.Args...)
	cmd.Dir = opts.Dir

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("server stdin: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("server stdout: %w", err)
	}
	cmd.Stderr = cmd.Stdout

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start server: %w", err)
	}
	logger.Info("server process started", "command", opts.Command, "pid", cmd.Process.Pid)

	p := &Process{
		cmd:    cmd,
		stdin:  stdin,
		events: make(chan Event, eventBuffer),
		logger: logger,
	}
	go p.scan(stdout, NewParser(opts.ServerType))
	return p, nil
}

func (p *Process) scan(r io.Reader, parser *Parser) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		ev, ok := parser.Parse(sc.Text())
		if !ok {
			continue
		}
		p.events <- ev
	}

	err := p.cmd.Wait()
	p.logger.Info("server process exited", "err", err)
	p.events <- Event{Kind: KindClosed}
	close(p.events)
}

// Events returns the server event stream. The channel is closed after a
// final KindClosed event once the process exits.
func (p *Process) Events() <-chan Event {
	return p.events
}

// Send writes one console command to the server.
func (p *Process) Send(command string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, err := io.WriteString(p.stdin, command+"\n"); err != nil {
		return fmt.Errorf("send %q: %w", command, err)
	}
	return nil
}

// Close asks the server to stop and closes its stdin. Safe to call more
// than once; the event channel closes when the process exits.
func (p *Process) Close() error {
	p.closeOnce.Do(func() {
		if err := p.Send("stop"); err != nil {
			p.logger.Warn("stop command failed", "err", err)
		}
		p.closeErr = p.stdin.Close()
	})
	return p.closeErr
}
