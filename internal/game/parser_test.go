package game

import (
	"reflect"
	"testing"
)

const prefix = "[12:05:33] [Server thread/INFO]: "

func TestParse_EventLines(t *testing.T) {
	p := NewParser("default")

	cases := []struct {
		name string
		line string
		want Event
	}{
		{"chat", prefix + "<Steve> hello there", Event{Kind: KindChat, User: "Steve", Text: "hello there"}},
		{"self action", prefix + "* Steve waves", Event{Kind: KindSelf, User: "Steve", Text: "waves"}},
		{"say", prefix + "[Server] restarting soon", Event{Kind: KindSay, User: "Server", Text: "restarting soon"}},
		{"join", prefix + "Steve joined the game", Event{Kind: KindJoin, User: "Steve"}},
		{"leave", prefix + "Steve left the game", Event{Kind: KindLeave, User: "Steve"}},
		{"death", prefix + "Steve was slain by Zombie", Event{Kind: KindDeath, User: "Steve", Text: "was slain by Zombie"}},
		{"death fall", prefix + "Steve fell from a high place", Event{Kind: KindDeath, User: "Steve", Text: "fell from a high place"}},
		{"advancement", prefix + "Steve has made the advancement [Stone Age]", Event{Kind: KindAdvancement, User: "Steve", Name: "Stone Age"}},
		{"goal", prefix + "Steve has reached the goal [Free the End]", Event{Kind: KindGoal, User: "Steve", Name: "Free the End"}},
		{"challenge", prefix + "Steve has completed the challenge [Beaconator]", Event{Kind: KindChallenge, User: "Steve", Name: "Beaconator"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := p.Parse(tc.line)
			if !ok {
				t.Fatalf("line not recognized: %q", tc.line)
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("got %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestParse_PlayersCount(t *testing.T) {
	p := NewParser("default")

	ev, ok := p.Parse(prefix + "There are 2 of a max of 20 players online: Steve, Alex")
	if !ok {
		t.Fatal("list reply not recognized")
	}
	if ev.Kind != KindPlayers || ev.Current != 2 || ev.Max != 20 {
		t.Fatalf("unexpected event: %+v", ev)
	}
	if !reflect.DeepEqual(ev.Names, []string{"Steve", "Alex"}) {
		t.Fatalf("unexpected names: %v", ev.Names)
	}
}

func TestParse_PlayersCountEmpty(t *testing.T) {
	p := NewParser("default")

	ev, ok := p.Parse(prefix + "There are 0 of a max of 20 players online:")
	if !ok {
		t.Fatal("empty list reply not recognized")
	}
	if len(ev.Names) != 0 {
		t.Fatalf("expected no names, got %v", ev.Names)
	}
}

func TestParse_VJoinAliasing(t *testing.T) {
	line := prefix + "Steve[/127.0.0.1:54321] logged in with entity id 261 at (8.5, 65.0, 8.5)"

	ev, ok := NewParser("default").Parse(line)
	if !ok {
		t.Fatal("login line not recognized")
	}
	if ev.Kind != KindJoin || ev.User != "Steve" {
		t.Fatalf("default server type should alias to join, got %+v", ev)
	}

	ev, ok = NewParser("paper").Parse(line)
	if !ok {
		t.Fatal("login line not recognized")
	}
	if ev.Kind != KindVJoin {
		t.Fatalf("non-default server type should keep vjoin, got %+v", ev)
	}
}

func TestParse_IgnoredLines(t *testing.T) {
	p := NewParser("default")

	for _, line := range []string{
		"plain text without a log prefix",
		prefix + "Preparing spawn area: 85%",
		"[12:05:33] [Worker-Main-4/WARN]: Can't keep up!",
	} {
		if ev, ok := p.Parse(line); ok {
			t.Fatalf("line %q should be ignored, got %+v", line, ev)
		}
	}
}

func TestFixType(t *testing.T) {
	if got := FixType(""); got != "default" {
		t.Fatalf("empty type should normalize to default, got %q", got)
	}
	if got := FixType(" Paper "); got != "paper" {
		t.Fatalf("expected lowercased trimmed type, got %q", got)
	}
}
