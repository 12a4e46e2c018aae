package relay

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/MKRhere/TeMiCross/internal/tellraw"
)

// attachments is the fixed-priority list of recognized media kinds; the
// first present attachment wins.
var attachments = []struct {
	kind    string
	present func(*tgbotapi.Message) bool
}{
	{"AUDIO", func(m *tgbotapi.Message) bool { return m.Audio != nil }},
	{"DOCUMENT", func(m *tgbotapi.Message) bool { return m.Document != nil }},
	{"PHOTO", func(m *tgbotapi.Message) bool { return len(m.Photo) > 0 }},
	{"STICKER", func(m *tgbotapi.Message) bool { return m.Sticker != nil }},
	{"VIDEO", func(m *tgbotapi.Message) bool { return m.Video != nil }},
	{"VOICE", func(m *tgbotapi.Message) bool { return m.Voice != nil }},
	{"CONTACT", func(m *tgbotapi.Message) bool { return m.Contact != nil }},
	{"LOCATION", func(m *tgbotapi.Message) bool { return m.Location != nil }},
	{"GAME", func(m *tgbotapi.Message) bool { return m.Game != nil }},
	{"VIDEO NOTE", func(m *tgbotapi.Message) bool { return m.VideoNote != nil }},
}

// extract produces the textual content of a message: plain text verbatim,
// or a bracket tag plus optional caption for the first recognized
// attachment. Self-authored messages have the embedded game username
// stripped, which only matters when resolving reply targets. Messages
// with no recognized content yield nil.
func (s *Session) extract(msg *tgbotapi.Message) []tellraw.Span {
	if msg.Text != "" {
		text, entities := msg.Text, msg.Entities
		if s.isSelf(msg) {
			// Offsets no longer line up once the username is cut off.
			text, entities = stripUsername(text), nil
		}
		return tellraw.Text(text, entities)
	}
	for _, att := range attachments {
		if att.present(msg) {
			return tellraw.Media(att.kind, msg.Caption, msg.CaptionEntities)
		}
	}
	return nil
}
