// Package tellraw builds and serializes the rich-text documents the
// Minecraft chat understands, from Telegram message content.
package tellraw

import (
	"encoding/json"
	"strings"
)

// Span is one styled segment of a tellraw document. The hover fields are
// only set on the reply-indicator span of a relayed reply.
type Span struct {
	Text          string `json:"text"`
	Color         string `json:"color"`
	Bold          bool   `json:"bold,omitempty"`
	Italic        bool   `json:"italic,omitempty"`
	Underlined    bool   `json:"underlined,omitempty"`
	Strikethrough bool   `json:"strikethrough,omitempty"`

	HoverType         string `json:"hoverType,omitempty"`
	HoverUser         string `json:"hoverUser,omitempty"`
	HoverFromTelegram bool   `json:"hoverIsFromPlatform,omitempty"`
	HoverText         string `json:"hoverText,omitempty"`
}

// Reply is the resolved context of a replied-to message, rendered as
// hover metadata on the reply indicator.
type Reply struct {
	Author       string
	Text         string
	FromTelegram bool
}

// Message assembles the full document for one relayed message: optional
// reply indicator, origin marker, author, separator, content.
func Message(fromTelegram bool, author string, content []Span, reply *Reply) []Span {
	spans := make([]Span, 0, len(content)+6)

	if reply != nil {
		spans = append(spans,
			Span{
				Text:              "Re",
				Color:             "dark_gray",
				HoverType:         "Reply",
				HoverUser:         reply.Author,
				HoverFromTelegram: reply.FromTelegram,
				HoverText:         reply.Text,
			},
			Span{Text: " ", Color: "white"},
		)
	}

	marker, markerColor := "MC", "green"
	if fromTelegram {
		marker, markerColor = "TG", "aqua"
	}
	spans = append(spans,
		Span{Text: "[", Color: "white"},
		Span{Text: marker, Color: markerColor},
		Span{Text: "] ", Color: "white"},
		Span{Text: author, Color: "white", Bold: true},
		Span{Text: ": ", Color: "white"},
	)

	return append(spans, content...)
}

// Command serializes a document into the console command that displays it.
func Command(spans []Span) string {
	b, _ := json.Marshal(spans)
	return "tellraw @a " + string(b)
}

// Flatten concatenates the visible text of a document.
func Flatten(spans []Span) string {
	var b strings.Builder
	for _, s := range spans {
		b.WriteString(s.Text)
	}
	return b.String()
}
