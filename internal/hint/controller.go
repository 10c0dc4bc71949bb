package hint

import (
	"log/slog"
	"sort"
	"sync"
)

// Change is emitted to subscribers whenever the active hint changes.
type Change struct {
	Active string // id of the newly active hint, "" when none
}

// Controller is the single object UI code talks to. It owns the registry and
// the viewed set, recomputes the active hint synchronously after every
// mutation, and notifies subscribers when it changes.
//
// All operations are serialized behind one mutex, so any query issued after
// a mutation observes the fully-updated state.
type Controller struct {
	mu     sync.Mutex
	reg    *Registry
	viewed map[string]bool
	active string
	store  *ViewedStore
	log    *slog.Logger

	subsMu    sync.Mutex
	nextSubID int
	subs      map[int]chan Change
}

// NewController creates a Controller persisting dismissals through kv. The
// viewed set is loaded once, here; a failing store yields an empty set and
// never an error.
func NewController(kv KVStore, log *slog.Logger) *Controller {
	store := NewViewedStore(kv, log)
	return &Controller{
		reg:    NewRegistry(),
		viewed: store.Load(),
		store:  store,
		log:    log,
		subs:   make(map[int]chan Change),
	}
}

// ---------------------------------------------------------------------------
// Mutations
// ---------------------------------------------------------------------------

// Register adds a mounted hint indicator. Duplicate registrations are
// ignored; the first one fixes priority and tie-break order for the session.
func (c *Controller) Register(id string, priority int) {
	c.mu.Lock()
	c.reg.Register(id, priority)
	changed, active := c.recompute()
	c.mu.Unlock()

	if changed {
		c.broadcast(Change{Active: active})
	}
}

// Unregister removes an unmounted hint indicator. If it was the active hint,
// the same recomputation pass promotes the next candidate, so no query ever
// observes an active-but-unmounted hint.
func (c *Controller) Unregister(id string) {
	c.mu.Lock()
	c.reg.Unregister(id)
	changed, active := c.recompute()
	c.mu.Unlock()

	if changed {
		c.broadcast(Change{Active: active})
	}
}

// Dismiss marks id as viewed for the rest of the session and persists the
// set. Dismissal is idempotent and permitted for ids that are not currently
// registered; the id simply becomes ineligible for the future.
func (c *Controller) Dismiss(id string) {
	c.mu.Lock()
	if c.viewed[id] {
		c.mu.Unlock()
		return
	}
	c.viewed[id] = true
	c.store.Save(c.viewed)
	changed, active := c.recompute()
	c.mu.Unlock()

	c.log.Debug("hint dismissed", "id", id)
	if changed {
		c.broadcast(Change{Active: active})
	}
}

// recompute derives the active hint from current state. Must be called with
// mu held. Reports whether the active hint changed.
func (c *Controller) recompute() (changed bool, active string) {
	active, _ = Select(c.reg.Entries(), c.viewed)
	changed = active != c.active
	c.active = active
	return changed, active
}

// ---------------------------------------------------------------------------
// Queries
// ---------------------------------------------------------------------------

// IsActive reports whether id is the currently active hint.
func (c *Controller) IsActive(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active != "" && c.active == id
}

// IsViewed reports whether id has been dismissed this session.
func (c *Controller) IsViewed(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewed[id]
}

// ActiveHint returns the currently active hint id, or ("", false) when no
// unviewed hint is registered.
func (c *Controller) ActiveHint() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active, c.active != ""
}

// ViewedHints returns the dismissed ids in sorted order, for diagnostics.
func (c *Controller) ViewedHints() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	ids := make([]string, 0, len(c.viewed))
	for id := range c.viewed {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// ---------------------------------------------------------------------------
// Subscriptions
// ---------------------------------------------------------------------------

// Subscribe returns a channel receiving a Change each time the active hint
// changes. bufSize controls the channel buffer; slow consumers have changes
// dropped rather than blocking a mutation.
func (c *Controller) Subscribe(bufSize int) (int, <-chan Change) {
	ch := make(chan Change, bufSize)
	c.subsMu.Lock()
	id := c.nextSubID
	c.nextSubID++
	c.subs[id] = ch
	c.subsMu.Unlock()
	return id, ch
}

// Unsubscribe removes a subscriber and closes its channel.
func (c *Controller) Unsubscribe(id int) {
	c.subsMu.Lock()
	if ch, ok := c.subs[id]; ok {
		delete(c.subs, id)
		close(ch)
	}
	c.subsMu.Unlock()
}

// broadcast sends a change to all subscribers non-blocking (drop on full).
func (c *Controller) broadcast(change Change) {
	c.subsMu.Lock()
	defer c.subsMu.Unlock()
	for _, sub := range c.subs {
		select {
		case sub <- change:
		default:
			// Slow consumer, drop.
		}
	}
}
