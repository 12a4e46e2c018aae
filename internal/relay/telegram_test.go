package relay

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type fakeBotAPI struct {
	attempts int
	err      error
	failFor  int // fail this many attempts, then succeed; 0 = always fail
}

func (f *fakeBotAPI) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.attempts++
	if f.failFor > 0 && f.attempts > f.failFor {
		return tgbotapi.Message{}, nil
	}
	return tgbotapi.Message{}, f.err
}

func newTestMessenger(bot botSender) (*TelegramMessenger, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	return &TelegramMessenger{bot: bot, chatID: 100, logger: logger, backoff: time.Millisecond}, &buf
}

func TestMessenger_SucceedsFirstAttempt(t *testing.T) {
	bot := &fakeBotAPI{}
	m, buf := newTestMessenger(bot)

	m.Send("hello")

	if bot.attempts != 1 {
		t.Fatalf("expected one attempt, got %d", bot.attempts)
	}
	if buf.Len() != 0 {
		t.Fatalf("successful send should log nothing: %s", buf.String())
	}
}

func TestMessenger_RecoversAfterRetry(t *testing.T) {
	bot := &fakeBotAPI{err: errors.New("Too Many Requests: retry later"), failFor: 2}
	m, buf := newTestMessenger(bot)

	m.Send("hello")

	if bot.attempts != 3 {
		t.Fatalf("expected 3 attempts, got %d", bot.attempts)
	}
	if strings.Contains(buf.String(), "telegram send failed") {
		t.Fatalf("recovered send must not report failure: %s", buf.String())
	}
}

func TestMessenger_ExhaustedRetriesAreLogged(t *testing.T) {
	bot := &fakeBotAPI{err: errors.New("Too Many Requests: retry later")}
	m, buf := newTestMessenger(bot)

	m.Send("hello")

	if bot.attempts != sendRetries+1 {
		t.Fatalf("expected %d attempts, got %d", sendRetries+1, bot.attempts)
	}
	if !strings.Contains(buf.String(), "telegram send failed") {
		t.Fatalf("exhausted retries dropped silently: %s", buf.String())
	}
}

func TestMessenger_ParseErrorFallsBackToPlain(t *testing.T) {
	bot := &fakeBotAPI{err: errors.New("Bad Request: can't parse entities"), failFor: 1}
	m, buf := newTestMessenger(bot)

	m.Send("<broken")

	// First attempt fails on HTML, the immediate plain retry succeeds.
	if bot.attempts != 2 {
		t.Fatalf("expected HTML attempt plus plain fallback, got %d", bot.attempts)
	}
	if strings.Contains(buf.String(), "telegram send failed") {
		t.Fatalf("plain fallback success must not report failure: %s", buf.String())
	}
}
