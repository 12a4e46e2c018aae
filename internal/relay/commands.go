package relay

import (
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func (s *Session) handleCommand(msg *tgbotapi.Message) {
	if msg.Chat == nil {
		return
	}

	switch msg.Command() {
	case "chatid":
		s.messenger.Reply(msg.Chat.ID, strconv.FormatInt(msg.Chat.ID, 10))

	case "list":
		if !s.cfg.AllowList {
			return
		}
		names, max := s.roster.Snapshot()
		s.messenger.Reply(msg.Chat.ID, fmt.Sprintf(
			"Players online (<code>%d</code>/<code>%d</code>):\n<code>%s</code>",
			len(names), max, esc(strings.Join(names, "\n")),
		))

	case "auth":
		// Codes are only valid from the bound chat, not private chats.
		if s.guard == nil || msg.From == nil || msg.Chat.ID != s.cfg.ChatID {
			return
		}
		player, ok := s.guard.Confirm(msg.From.ID, strings.TrimSpace(msg.CommandArguments()))
		if !ok {
			s.messenger.Reply(msg.Chat.ID, "Unknown or expired code.")
			return
		}
		s.messenger.Reply(msg.Chat.ID, code(player)+" authenticated.")
	}
}
