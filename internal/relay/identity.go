package relay

import (
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// isSelf reports whether a message was authored by the bridge's own bot
// identity, i.e. is a game message the bridge relayed earlier.
func (s *Session) isSelf(msg *tgbotapi.Message) bool {
	return msg.From != nil && msg.From.ID == s.cfg.BotID
}

// displayName derives the human-readable author of a message. For a
// self-authored (game-relayed) message that is the game username embedded
// as the first token of the text; otherwise the Telegram author's name.
// A missing author record yields an empty name, never an error.
func (s *Session) displayName(msg *tgbotapi.Message) string {
	if s.isSelf(msg) {
		return firstToken(msg.Text)
	}
	if msg.From == nil {
		return ""
	}
	if msg.From.LastName != "" {
		return msg.From.FirstName + " " + msg.From.LastName
	}
	return msg.From.FirstName
}

func firstToken(text string) string {
	name, _, _ := strings.Cut(text, " ")
	return name
}

// stripUsername removes the leading game-username token, the inverse of
// the prefixing done when game chat is relayed into Telegram text.
func stripUsername(text string) string {
	_, rest, ok := strings.Cut(text, " ")
	if !ok {
		return ""
	}
	return rest
}
