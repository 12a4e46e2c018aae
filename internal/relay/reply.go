package relay

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/MKRhere/TeMiCross/internal/tellraw"
)

// resolveReply builds hover context for a replied-to message, or nil when
// the message is not a reply. Only one level is resolved; the target's
// own reply chain is never followed.
func (s *Session) resolveReply(msg *tgbotapi.Message) *tellraw.Reply {
	target := msg.ReplyToMessage
	if target == nil {
		return nil
	}
	return &tellraw.Reply{
		Author:       s.displayName(target),
		Text:         tellraw.Flatten(s.extract(target)),
		FromTelegram: !s.isSelf(target),
	}
}
