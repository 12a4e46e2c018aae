package tellraw

import (
	"sort"
	"unicode/utf16"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Text converts a Telegram text fragment and its formatting entities into
// spans. Entity offsets are UTF-16 code units, per the Bot API. Entities
// overlapping an already-consumed region are skipped.
func Text(text string, entities []tgbotapi.MessageEntity) []Span {
	if text == "" {
		return nil
	}

	units := utf16.Encode([]rune(text))
	if len(entities) == 0 {
		return []Span{{Text: text, Color: "white"}}
	}

	sorted := make([]tgbotapi.MessageEntity, len(entities))
	copy(sorted, entities)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Offset < sorted[j].Offset })

	spans := make([]Span, 0, 2*len(sorted)+1)
	cursor := 0
	for _, ent := range sorted {
		if ent.Offset < cursor || ent.Length <= 0 || ent.Offset+ent.Length > len(units) {
			continue
		}
		if ent.Offset > cursor {
			spans = append(spans, Span{Text: decode(units[cursor:ent.Offset]), Color: "white"})
		}
		spans = append(spans, styled(decode(units[ent.Offset:ent.Offset+ent.Length]), ent.Type))
		cursor = ent.Offset + ent.Length
	}
	if cursor < len(units) {
		spans = append(spans, Span{Text: decode(units[cursor:]), Color: "white"})
	}
	return spans
}

func decode(units []uint16) string {
	return string(utf16.Decode(units))
}

func styled(text, entityType string) Span {
	s := Span{Text: text, Color: "white"}
	switch entityType {
	case "bold":
		s.Bold = true
	case "italic":
		s.Italic = true
	case "underline":
		s.Underlined = true
	case "strikethrough":
		s.Strikethrough = true
	case "code", "pre":
		s.Color = "gray"
	case "url", "text_link", "mention":
		s.Color = "aqua"
		s.Underlined = true
	}
	return s
}

// Media renders a non-text attachment as a bracket tag, followed by the
// caption when one exists. Without a caption the closing bracket carries
// no trailing space.
func Media(kind, caption string, entities []tgbotapi.MessageEntity) []Span {
	if caption == "" {
		return []Span{
			{Text: "[", Color: "white"},
			{Text: kind, Color: "gray"},
			{Text: "]", Color: "white"},
		}
	}
	spans := []Span{
		{Text: "[", Color: "white"},
		{Text: kind, Color: "gray"},
		{Text: "] ", Color: "white"},
	}
	return append(spans, Text(caption, entities)...)
}
