package relay

import (
	"html"

	"github.com/MKRhere/TeMiCross/internal/game"
)

// formatEvent maps one server event to its Telegram message. Join and
// leave also update the roster. Events with no message form (vjoin on
// non-default servers, players_count, close) report false.
func (s *Session) formatEvent(ev game.Event) (string, bool) {
	switch ev.Kind {
	case game.KindChat:
		return code(ev.User) + " " + esc(ev.Text), true
	case game.KindSelf:
		return code("* " + ev.User + " " + ev.Text), true
	case game.KindSay:
		return code(ev.User + ": " + ev.Text), true
	case game.KindJoin:
		return code(s.roster.Join(ev.User) + " joined the server"), true
	case game.KindLeave:
		return code(s.roster.Leave(ev.User) + " left the server"), true
	case game.KindDeath:
		return code(ev.User + " " + ev.Text), true
	case game.KindAdvancement:
		return code(ev.User) + " has made the advancement " + code("["+ev.Name+"]"), true
	case game.KindGoal:
		return code(ev.User) + " has reached the goal " + code("["+ev.Name+"]"), true
	case game.KindChallenge:
		return code(ev.User) + " has completed the challenge " + code("["+ev.Name+"]"), true
	}
	return "", false
}

func code(s string) string {
	return "<code>" + esc(s) + "</code>"
}

func esc(s string) string {
	return html.EscapeString(s)
}
