// Package game is the boundary to the Minecraft server process. It turns
// the server's log output into typed events and writes console commands
// back to the server's stdin.
package game

// Kind identifies the type of a server event.
type Kind string

const (
	KindChat        Kind = "user"   // <user> text
	KindSelf        Kind = "self"   // * user action
	KindSay         Kind = "say"    // [user] text
	KindJoin        Kind = "join"
	KindVJoin       Kind = "vjoin" // vanilla "logged in" line, aliased to join for the default server type
	KindLeave       Kind = "leave"
	KindDeath       Kind = "death"
	KindAdvancement Kind = "advancement"
	KindGoal        Kind = "goal"
	KindChallenge   Kind = "challenge"
	KindPlayers     Kind = "players_count"
	KindClosed      Kind = "close"
)

// Event is one typed occurrence on the server. Which fields are set
// depends on Kind: User/Text for chat-like events, User/Name for
// advancement-family events, Current/Max/Names for players_count.
type Event struct {
	Kind    Kind
	User    string
	Text    string
	Name    string
	Current int
	Max     int
	Names   []string
}

// Client is the server connection consumed by the relay. Events delivers
// parsed server events until the connection closes; the channel is closed
// after a final KindClosed event.
type Client interface {
	Events() <-chan Event
	Send(command string) error
	Close() error
}
