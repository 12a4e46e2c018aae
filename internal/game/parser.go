package game

import (
	"regexp"
	"strconv"
	"strings"
)

// DefaultServerType is the vanilla server log dialect.
const DefaultServerType = "default"

var (
	logLineRe = regexp.MustCompile(`^\[\d{2}:\d{2}:\d{2}\] \[[^\]]+\]: (.*)$`)

	chatRe  = regexp.MustCompile(`^<([^>]+)> (.*)$`)
	selfRe  = regexp.MustCompile(`^\* (\S+) (.*)$`)
	sayRe   = regexp.MustCompile(`^\[([^\]]+)\] (.*)$`)
	joinRe  = regexp.MustCompile(`^(\S+) joined the game$`)
	vjoinRe = regexp.MustCompile(`^(\S+)\[/[\d.:]+\] logged in with entity id \d+ at .*$`)
	leaveRe = regexp.MustCompile(`^(\S+) left the game$`)

	advancementRe = regexp.MustCompile(`^(\S+) has made the advancement \[(.+)\]$`)
	goalRe        = regexp.MustCompile(`^(\S+) has reached the goal \[(.+)\]$`)
	challengeRe   = regexp.MustCompile(`^(\S+) has completed the challenge \[(.+)\]$`)

	listRe      = regexp.MustCompile(`^There are (\d+) of a max of (\d+) players online:\s*(.*)$`)
	listSplitRe = regexp.MustCompile(`\s*,\s*`)

	// Vanilla death messages start with the victim's name followed by one
	// of a known set of verbs.
	deathRe = regexp.MustCompile(`^(\S+) ((?:was|blew|burned|discovered|drowned|experienced|fell|froze|hit|starved|suffocated|tried|walked|went|withered|died|left the confines).*)$`)
)

// FixType normalizes a configured server type. An empty or unknown value
// falls back to the vanilla dialect.
func FixType(t string) string {
	t = strings.ToLower(strings.TrimSpace(t))
	if t == "" {
		return DefaultServerType
	}
	return t
}

// Parser turns server log lines into events.
type Parser struct {
	serverType string
}

func NewParser(serverType string) *Parser {
	return &Parser{serverType: FixType(serverType)}
}

// Parse matches one raw log line. The boolean is false for lines that are
// not server messages or carry no event.
func (p *Parser) Parse(line string) (Event, bool) {
	m := logLineRe.FindStringSubmatch(line)
	if m == nil {
		return Event{}, false
	}
	body := m[1]

	if m := chatRe.FindStringSubmatch(body); m != nil {
		return Event{Kind: KindChat, User: m[1], Text: m[2]}, true
	}
	if m := selfRe.FindStringSubmatch(body); m != nil {
		return Event{Kind: KindSelf, User: m[1], Text: m[2]}, true
	}
	if m := joinRe.FindStringSubmatch(body); m != nil {
		return Event{Kind: KindJoin, User: m[1]}, true
	}
	if m := leaveRe.FindStringSubmatch(body); m != nil {
		return Event{Kind: KindLeave, User: m[1]}, true
	}
	if m := vjoinRe.FindStringSubmatch(body); m != nil {
		// The "logged in" connection line doubles as the join signal on
		// vanilla servers; other dialects print their own join line.
		if p.serverType == DefaultServerType {
			return Event{Kind: KindJoin, User: m[1]}, true
		}
		return Event{Kind: KindVJoin, User: m[1]}, true
	}
	if m := advancementRe.FindStringSubmatch(body); m != nil {
		return Event{Kind: KindAdvancement, User: m[1], Name: m[2]}, true
	}
	if m := goalRe.FindStringSubmatch(body); m != nil {
		return Event{Kind: KindGoal, User: m[1], Name: m[2]}, true
	}
	if m := challengeRe.FindStringSubmatch(body); m != nil {
		return Event{Kind: KindChallenge, User: m[1], Name: m[2]}, true
	}
	if m := listRe.FindStringSubmatch(body); m != nil {
		current, _ := strconv.Atoi(m[1])
		max, _ := strconv.Atoi(m[2])
		return Event{Kind: KindPlayers, Current: current, Max: max, Names: splitNames(m[3])}, true
	}
	if m := sayRe.FindStringSubmatch(body); m != nil {
		return Event{Kind: KindSay, User: m[1], Text: m[2]}, true
	}
	if m := deathRe.FindStringSubmatch(body); m != nil {
		return Event{Kind: KindDeath, User: m[1], Text: m[2]}, true
	}

	return Event{}, false
}

// splitNames splits a comma-delimited player list, tolerating surrounding
// whitespace and discarding empty names.
func splitNames(raw string) []string {
	names := make([]string, 0)
	for _, name := range listSplitRe.Split(strings.TrimSpace(raw), -1) {
		if name != "" {
			names = append(names, name)
		}
	}
	return names
}
