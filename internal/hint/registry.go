package hint

// Entry is one currently-mounted hint indicator.
type Entry struct {
	ID       string
	Priority int // lower shows first
	seq      int // registration sequence, breaks priority ties
}

// Registry tracks the hints whose indicators are currently mounted, in
// registration order. It is not safe for concurrent use; the Controller
// serializes all access.
type Registry struct {
	entries []Entry
	nextSeq int
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register inserts id with the given priority. Re-registering an existing id
// is a no-op, not an update: the first registration fixes both the priority
// and the tie-break position for the session. Returns false on duplicate.
func (r *Registry) Register(id string, priority int) bool {
	for i := range r.entries {
		if r.entries[i].ID == id {
			return false
		}
	}
	r.entries = append(r.entries, Entry{ID: id, Priority: priority, seq: r.nextSeq})
	r.nextSeq++
	return true
}

// Unregister removes id if present. Removing an unknown id is a no-op.
// Returns true if an entry was removed.
func (r *Registry) Unregister(id string) bool {
	for i := range r.entries {
		if r.entries[i].ID == id {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			return true
		}
	}
	return false
}

// Contains reports whether id is currently registered.
func (r *Registry) Contains(id string) bool {
	for i := range r.entries {
		if r.entries[i].ID == id {
			return true
		}
	}
	return false
}

// Entries returns a snapshot of all current entries in registration order.
func (r *Registry) Entries() []Entry {
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Len returns the number of registered hints.
func (r *Registry) Len() int {
	return len(r.entries)
}
