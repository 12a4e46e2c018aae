// Package relay bridges one Telegram chat and one Minecraft server:
// Telegram messages become tellraw commands, server events become
// Telegram messages.
package relay

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/MKRhere/TeMiCross/internal/auth"
	"github.com/MKRhere/TeMiCross/internal/game"
	"github.com/MKRhere/TeMiCross/internal/tellraw"
)

const defaultRosterTimeout = 5 * time.Minute

// ErrRosterTimeout is reported when the roster query goes unanswered.
var ErrRosterTimeout = errors.New("roster query timed out")

// Messenger is the outbound Telegram surface the session writes to.
type Messenger interface {
	// Send delivers an HTML message to the bound chat.
	Send(text string)
	// Reply delivers an HTML message to an arbitrary chat (command replies).
	Reply(chatID int64, text string)
}

// Config binds a session to one chat and one bot identity.
type Config struct {
	ChatID int64
	BotID  int64
	// AllowList enables roster tracking, bootstrap, and the /list command.
	AllowList bool
	// RosterTimeout bounds the bootstrap query; zero means five minutes.
	RosterTimeout time.Duration
}

// Session is one chat↔server binding with explicit lifecycle. All roster
// and auth state lives here; nothing is shared across sessions.
type Session struct {
	cfg       Config
	client    game.Client
	messenger Messenger
	roster    *Roster
	guard     *auth.Guard
	logger    *slog.Logger

	listReplies chan game.Event
	closed      chan struct{}
	stopOnce    sync.Once
}

func New(cfg Config, client game.Client, m Messenger, logger *slog.Logger) *Session {
	if cfg.RosterTimeout <= 0 {
		cfg.RosterTimeout = defaultRosterTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{
		cfg:         cfg,
		client:      client,
		messenger:   m,
		roster:      NewRoster(),
		logger:      logger,
		listReplies: make(chan game.Event, 1),
		closed:      make(chan struct{}),
	}
}

// AttachGuard enables the local-auth add-on. Must be called before Run.
func (s *Session) AttachGuard(g *auth.Guard) {
	s.guard = g
}

// Run drives the session until the context is cancelled, the server
// closes, or the update stream ends. It consumes game events on a second
// goroutine so neither side can stall the other.
func (s *Session) Run(ctx context.Context, updates <-chan tgbotapi.Update) error {
	go s.runGameLoop()

	if err := s.client.Send("list"); err != nil {
		s.logger.Warn("roster query failed", "err", err)
	}
	if s.cfg.AllowList {
		go s.bootstrapRoster()
	}

	for {
		select {
		case <-ctx.Done():
			s.Stop()
			return nil
		case <-s.closed:
			return nil
		case u, ok := <-updates:
			if !ok {
				s.Stop()
				return nil
			}
			s.handleUpdate(u)
		}
	}
}

func (s *Session) runGameLoop() {
	for ev := range s.client.Events() {
		s.handleEvent(ev)
	}
}

func (s *Session) handleEvent(ev game.Event) {
	select {
	case <-s.closed:
		// Torn down; the process may still be draining its last lines.
		return
	default:
	}

	switch ev.Kind {
	case game.KindPlayers:
		select {
		case s.listReplies <- ev:
		default:
		}
		return
	case game.KindClosed:
		s.Stop()
		return
	case game.KindJoin:
		if s.guard != nil {
			s.guard.OnJoin(ev.User)
		}
	}

	if msg, ok := s.formatEvent(ev); ok {
		s.messenger.Send(msg)
	}
}

// bootstrapRoster races the first players_count reply against the roster
// timeout; the loser's effect is discarded. Never retried on timeout.
func (s *Session) bootstrapRoster() {
	select {
	case ev := <-s.listReplies:
		s.roster.Replace(ev.Names, ev.Max)
		s.logger.Info("roster bootstrapped", "current", ev.Current, "max", ev.Max)
	case <-time.After(s.cfg.RosterTimeout):
		s.logger.Warn("roster bootstrap failed", "err", ErrRosterTimeout)
	case <-s.closed:
	}
}

// handleUpdate is the single entry point for inbound Telegram traffic.
// Loop prevention lives here: nothing authored by the bot itself may
// proceed past this check.
func (s *Session) handleUpdate(u tgbotapi.Update) {
	msg := u.Message
	if msg == nil {
		return
	}
	if s.isSelf(msg) {
		return
	}
	if msg.IsCommand() {
		s.handleCommand(msg)
		return
	}
	if msg.Chat == nil || msg.Chat.ID != s.cfg.ChatID {
		return
	}
	if s.roster.Len() == 0 {
		return
	}
	s.relayToGame(msg)
}

func (s *Session) relayToGame(msg *tgbotapi.Message) {
	content := s.extract(msg)
	if len(content) == 0 {
		return
	}

	doc := tellraw.Message(!s.isSelf(msg), s.displayName(msg), content, s.resolveReply(msg))
	if err := s.client.Send(tellraw.Command(doc)); err != nil {
		s.logger.Error("relay to server failed", "err", err)
	}
}

// Stop is the one-shot teardown. Idempotent; no event is processed after
// it returns.
func (s *Session) Stop() {
	s.stopOnce.Do(func() {
		close(s.closed)
		if err := s.client.Close(); err != nil {
			s.logger.Warn("server close failed", "err", err)
		}
		if s.guard != nil {
			s.guard.Stop()
		}
		s.logger.Info("relay session stopped")
	})
}
