package relay

import "sync"

// Roster is the set of currently connected players, ordered by most
// recent join, plus the server's player capacity. All mutation goes
// through Join, Leave, and Replace.
type Roster struct {
	mu    sync.Mutex
	names []string
	max   int
}

func NewRoster() *Roster {
	return &Roster{}
}

// Join records a player: any existing occurrence is removed, then the
// name is appended at the tail. Returns the name for announcements.
func (r *Roster) Join(name string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.remove(name)
	r.names = append(r.names, name)
	return name
}

// Leave removes a player; unknown names are a no-op. Returns the name
// for announcements.
func (r *Roster) Leave(name string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.remove(name)
	return name
}

// Replace swaps in a full roster from a players_count reply.
func (r *Roster) Replace(names []string, max int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.names = append(r.names[:0:0], names...)
	r.max = max
}

// Snapshot returns a copy of the roster and the capacity.
func (r *Roster) Snapshot() ([]string, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.names...), r.max
}

func (r *Roster) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.names)
}

func (r *Roster) remove(name string) {
	kept := r.names[:0]
	for _, n := range r.names {
		if n != name {
			kept = append(kept, n)
		}
	}
	r.names = kept
}
