// Package feed fetches trading signals, portfolio state, and quotes from the
// wraith backend over HTTP and WebSocket, and mirrors them into a shared
// in-memory model the UI renders from.
package feed

import (
	"sort"
	"sync"

	"wraith/internal/domain"
)

// EventType identifies what part of the model an Event refers to.
type EventType string

// Event types.
const (
	EventSignals   EventType = "signals"
	EventPortfolio EventType = "portfolio"
	EventQuote     EventType = "quote"
	EventStatus    EventType = "status"
)

// Event is emitted to subscribers when part of the model changes.
type Event struct {
	Type      EventType
	Connected bool // status events only
}

// Model holds the latest backend state with pub/sub change notification.
// Writers are the HTTP poller and the WebSocket stream; readers are the UI.
type Model struct {
	mu        sync.RWMutex
	signals   []domain.Signal
	portfolio *domain.PortfolioSummary
	quotes    map[string]domain.Quote
	connected bool

	subsMu    sync.Mutex
	nextSubID int
	subs      map[int]chan Event
}

// NewModel creates an empty Model.
func NewModel() *Model {
	return &Model{
		quotes: make(map[string]domain.Quote),
		subs:   make(map[int]chan Event),
	}
}

// ---------------------------------------------------------------------------
// Writers
// ---------------------------------------------------------------------------

// SetSignals replaces the signal list.
func (m *Model) SetSignals(signals []domain.Signal) {
	m.mu.Lock()
	m.signals = append([]domain.Signal(nil), signals...)
	m.mu.Unlock()
	m.broadcast(Event{Type: EventSignals})
}

// AddSignal prepends one signal pushed over the stream.
func (m *Model) AddSignal(s domain.Signal) {
	m.mu.Lock()
	// Replace in place when the backend re-sends an updated signal.
	replaced := false
	for i := range m.signals {
		if m.signals[i].ID == s.ID {
			m.signals[i] = s
			replaced = true
			break
		}
	}
	if !replaced {
		m.signals = append([]domain.Signal{s}, m.signals...)
	}
	m.mu.Unlock()
	m.broadcast(Event{Type: EventSignals})
}

// SetPortfolio replaces the portfolio summary.
func (m *Model) SetPortfolio(p domain.PortfolioSummary) {
	m.mu.Lock()
	m.portfolio = &p
	m.mu.Unlock()
	m.broadcast(Event{Type: EventPortfolio})
}

// SetQuote inserts or updates the quote for one symbol.
func (m *Model) SetQuote(q domain.Quote) {
	m.mu.Lock()
	m.quotes[q.Symbol] = q
	m.mu.Unlock()
	m.broadcast(Event{Type: EventQuote})
}

// SetConnected records feed connectivity and notifies on transitions.
func (m *Model) SetConnected(connected bool) {
	m.mu.Lock()
	changed := m.connected != connected
	m.connected = connected
	m.mu.Unlock()
	if changed {
		m.broadcast(Event{Type: EventStatus, Connected: connected})
	}
}

// ---------------------------------------------------------------------------
// Readers
// ---------------------------------------------------------------------------

// Signals returns a snapshot of the current signals, newest first.
func (m *Model) Signals() []domain.Signal {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]domain.Signal(nil), m.signals...)
}

// Portfolio returns the latest portfolio summary, if one has arrived.
func (m *Model) Portfolio() (domain.PortfolioSummary, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.portfolio == nil {
		return domain.PortfolioSummary{}, false
	}
	return *m.portfolio, true
}

// Quotes returns a snapshot of all quotes sorted by symbol.
func (m *Model) Quotes() []domain.Quote {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.Quote, 0, len(m.quotes))
	for _, q := range m.quotes {
		out = append(out, q)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Symbol < out[j].Symbol })
	return out
}

// Connected reports whether the stream is currently up.
func (m *Model) Connected() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.connected
}

// ---------------------------------------------------------------------------
// Subscriptions
// ---------------------------------------------------------------------------

// Subscribe returns a channel that receives events. bufSize controls the
// channel buffer; slow consumers will have events dropped.
func (m *Model) Subscribe(bufSize int) (int, <-chan Event) {
	ch := make(chan Event, bufSize)
	m.subsMu.Lock()
	id := m.nextSubID
	m.nextSubID++
	m.subs[id] = ch
	m.subsMu.Unlock()
	return id, ch
}

// Unsubscribe removes a subscriber and closes its channel.
func (m *Model) Unsubscribe(id int) {
	m.subsMu.Lock()
	if ch, ok := m.subs[id]; ok {
		delete(m.subs, id)
		close(ch)
	}
	m.subsMu.Unlock()
}

// broadcast sends an event to all subscribers non-blocking (drop on full).
func (m *Model) broadcast(e Event) {
	m.subsMu.Lock()
	defer m.subsMu.Unlock()
	for _, ch := range m.subs {
		select {
		case ch <- e:
		default:
			// Slow consumer, drop event.
		}
	}
}
