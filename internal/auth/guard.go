package auth

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

const defaultWindow = 2 * time.Minute

// Guard watches joins and kicks players that fail to authenticate within
// the window. Commands go out through the provided send function
// (the game client's console).
type Guard struct {
	store  *Store
	send   func(command string) error
	window time.Duration
	logger *slog.Logger

	mu      sync.Mutex
	pending map[string]*pendingAuth
	stopped bool
}

type pendingAuth struct {
	code  string
	timer *time.Timer
}

func NewGuard(store *Store, send func(command string) error, window time.Duration, logger *slog.Logger) *Guard {
	if window <= 0 {
		window = defaultWindow
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Guard{
		store:   store,
		send:    send,
		window:  window,
		logger:  logger,
		pending: make(map[string]*pendingAuth),
	}
}

// OnJoin challenges an unknown player with a one-time code. Already
// authorized players pass silently.
func (g *Guard) OnJoin(name string) {
	authorized, err := g.store.Authorized(name)
	if err != nil {
		g.logger.Error("auth lookup failed", "player", name, "err", err)
		return
	}
	if authorized {
		return
	}

	code := newCode()
	g.mu.Lock()
	if g.stopped {
		g.mu.Unlock()
		return
	}
	if p, ok := g.pending[name]; ok {
		p.timer.Stop()
	}
	g.pending[name] = &pendingAuth{
		code:  code,
		timer: time.AfterFunc(g.window, func() { g.expire(name) }),
	}
	g.mu.Unlock()

	g.logger.Info("auth challenge issued", "player", name)
	g.command(fmt.Sprintf("tell %s Send /auth %s in the Telegram chat within %s or you will be kicked", name, code, g.window))
}

// Confirm matches a code sent from Telegram against pending challenges.
// On success the player is stored as authorized and their name returned.
func (g *Guard) Confirm(telegramID int64, code string) (string, bool) {
	if code == "" {
		return "", false
	}

	g.mu.Lock()
	var player string
	for name, p := range g.pending {
		if p.code == code {
			p.timer.Stop()
			delete(g.pending, name)
			player = name
			break
		}
	}
	g.mu.Unlock()

	if player == "" {
		return "", false
	}
	if err := g.store.Authorize(player, telegramID); err != nil {
		g.logger.Error("auth store failed", "player", player, "err", err)
		return "", false
	}
	g.logger.Info("player authenticated", "player", player, "telegram_id", telegramID)
	return player, true
}

// Stop cancels all pending challenges without kicking anyone.
func (g *Guard) Stop() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.stopped = true
	for name, p := range g.pending {
		p.timer.Stop()
		delete(g.pending, name)
	}
}

func (g *Guard) expire(name string) {
	g.mu.Lock()
	_, ok := g.pending[name]
	delete(g.pending, name)
	g.mu.Unlock()
	if !ok {
		return
	}
	g.logger.Info("auth challenge expired", "player", name)
	g.command("kick " + name + " Authentication timed out")
}

func (g *Guard) command(cmd string) {
	if err := g.send(cmd); err != nil {
		g.logger.Warn("auth command failed", "err", err)
	}
}

func newCode() string {
	var b [4]byte
	_, _ = rand.Read(b[:])
	return fmt.Sprintf("%06d", binary.BigEndian.Uint32(b[:])%1000000)
}
