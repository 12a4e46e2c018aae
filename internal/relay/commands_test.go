package relay

import (
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/MKRhere/TeMiCross/internal/auth"
)

func commandMessage(from *tgbotapi.User, chatID int64, text string) *tgbotapi.Message {
	return &tgbotapi.Message{
		From: from,
		Chat: &tgbotapi.Chat{ID: chatID},
		Text: text,
		Entities: []tgbotapi.MessageEntity{
			{Type: "bot_command", Offset: 0, Length: len(strings.Fields(text)[0])},
		},
	}
}

func TestCommand_ChatID(t *testing.T) {
	s := newTestSession(t, Config{ChatID: 100, BotID: 42})

	msg := commandMessage(&tgbotapi.User{ID: 7, FirstName: "Ann"}, 555, "/chatid")
	s.handleUpdate(tgbotapi.Update{Message: msg})

	m := s.messenger.(*fakeMessenger)
	if len(m.replies) != 1 || m.replies[0] != "555" {
		t.Fatalf("unexpected /chatid reply: %v", m.replies)
	}
}

func TestCommand_ListEnabled(t *testing.T) {
	s := newTestSession(t, Config{ChatID: 100, BotID: 42, AllowList: true})
	s.roster.Replace([]string{"Steve", "Alex"}, 20)

	msg := commandMessage(&tgbotapi.User{ID: 7, FirstName: "Ann"}, 100, "/list")
	s.handleUpdate(tgbotapi.Update{Message: msg})

	m := s.messenger.(*fakeMessenger)
	if len(m.replies) != 1 {
		t.Fatalf("expected one reply, got %v", m.replies)
	}
	reply := m.replies[0]
	if !strings.Contains(reply, "<code>2</code>/<code>20</code>") {
		t.Fatalf("reply missing counts: %q", reply)
	}
	if !strings.Contains(reply, "Steve\nAlex") {
		t.Fatalf("reply missing newline-joined roster: %q", reply)
	}
}

func TestCommand_ListDisabledWithoutAllowList(t *testing.T) {
	s := newTestSession(t, Config{ChatID: 100, BotID: 42})
	s.roster.Join("Steve")

	msg := commandMessage(&tgbotapi.User{ID: 7, FirstName: "Ann"}, 100, "/list")
	s.handleUpdate(tgbotapi.Update{Message: msg})

	m := s.messenger.(*fakeMessenger)
	if len(m.replies) != 0 {
		t.Fatalf("/list must be absent without the allow list, got %v", m.replies)
	}
}

func TestCommand_AuthOnlyFromBoundChat(t *testing.T) {
	s := newTestSession(t, Config{ChatID: 100, BotID: 42})

	store, err := auth.Open(filepath.Join(t.TempDir(), "auth.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()
	guard := auth.NewGuard(store, s.client.Send, time.Minute, testDiscardLogger())
	defer guard.Stop()
	s.AttachGuard(guard)

	guard.OnJoin("Steve")
	challenge := s.client.(*fakeClient).sent()
	m := regexp.MustCompile(`/auth (\d{6})`).FindStringSubmatch(challenge[0])
	if m == nil {
		t.Fatalf("challenge carries no code: %v", challenge)
	}

	// The code from a private chat with the bot must be rejected.
	private := commandMessage(&tgbotapi.User{ID: 7, FirstName: "Ann"}, 555, "/auth "+m[1])
	s.handleUpdate(tgbotapi.Update{Message: private})
	if authorized, _ := store.Authorized("Steve"); authorized {
		t.Fatal("code accepted outside the bound chat")
	}

	bound := commandMessage(&tgbotapi.User{ID: 7, FirstName: "Ann"}, 100, "/auth "+m[1])
	s.handleUpdate(tgbotapi.Update{Message: bound})
	if authorized, _ := store.Authorized("Steve"); !authorized {
		t.Fatal("code rejected in the bound chat")
	}
}

func TestCommand_NotRelayedToGame(t *testing.T) {
	s := newTestSession(t, Config{ChatID: 100, BotID: 42})
	s.roster.Join("Steve")

	msg := commandMessage(&tgbotapi.User{ID: 7, FirstName: "Ann"}, 100, "/chatid")
	s.handleUpdate(tgbotapi.Update{Message: msg})

	if cmds := s.client.(*fakeClient).sent(); len(cmds) != 0 {
		t.Fatalf("command leaked into the game: %v", cmds)
	}
}
