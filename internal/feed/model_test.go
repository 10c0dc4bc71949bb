package feed

import (
	"testing"
	"time"

	"wraith/internal/domain"
)

func TestModelSignals(t *testing.T) {
	m := NewModel()

	m.SetSignals([]domain.Signal{{ID: "s1", Symbol: "AAPL"}})
	if got := m.Signals(); len(got) != 1 || got[0].ID != "s1" {
		t.Fatalf("Signals = %v, want [s1]", got)
	}

	// Pushed signals arrive newest first.
	m.AddSignal(domain.Signal{ID: "s2", Symbol: "TSLA"})
	got := m.Signals()
	if len(got) != 2 || got[0].ID != "s2" {
		t.Errorf("Signals after push = %v, want s2 first", got)
	}

	// Re-pushing an existing ID updates in place.
	m.AddSignal(domain.Signal{ID: "s1", Symbol: "AAPL", Confidence: 0.9})
	got = m.Signals()
	if len(got) != 2 {
		t.Fatalf("Signals after duplicate push has %d entries, want 2", len(got))
	}
	for _, s := range got {
		if s.ID == "s1" && s.Confidence != 0.9 {
			t.Errorf("s1 confidence = %v, want 0.9", s.Confidence)
		}
	}
}

func TestModelSnapshotIsolation(t *testing.T) {
	m := NewModel()
	m.SetSignals([]domain.Signal{{ID: "s1"}})

	snap := m.Signals()
	snap[0].ID = "mutated"

	if got := m.Signals(); got[0].ID != "s1" {
		t.Errorf("model state mutated through snapshot: %v", got)
	}
}

func TestModelQuotesSorted(t *testing.T) {
	m := NewModel()
	m.SetQuote(domain.Quote{Symbol: "TSLA", Price: 200})
	m.SetQuote(domain.Quote{Symbol: "AAPL", Price: 180})
	m.SetQuote(domain.Quote{Symbol: "TSLA", Price: 201}) // update

	got := m.Quotes()
	if len(got) != 2 {
		t.Fatalf("Quotes has %d entries, want 2", len(got))
	}
	if got[0].Symbol != "AAPL" || got[1].Symbol != "TSLA" {
		t.Errorf("Quotes not sorted by symbol: %v", got)
	}
	if got[1].Price != 201 {
		t.Errorf("TSLA price = %v, want updated 201", got[1].Price)
	}
}

func TestModelPortfolio(t *testing.T) {
	m := NewModel()

	if _, ok := m.Portfolio(); ok {
		t.Error("Portfolio should report absent before first set")
	}

	m.SetPortfolio(domain.PortfolioSummary{Equity: 1000, AsOf: time.Now()})
	p, ok := m.Portfolio()
	if !ok || p.Equity != 1000 {
		t.Errorf("Portfolio = (%v, %v), want equity 1000", p, ok)
	}
}

func TestModelEvents(t *testing.T) {
	m := NewModel()
	sub, ch := m.Subscribe(16)
	defer m.Unsubscribe(sub)

	m.SetSignals(nil)
	m.SetPortfolio(domain.PortfolioSummary{})
	m.SetQuote(domain.Quote{Symbol: "AAPL"})
	m.SetConnected(true)
	m.SetConnected(true) // no transition, no event

	want := []EventType{EventSignals, EventPortfolio, EventQuote, EventStatus}
	for i, w := range want {
		select {
		case e := <-ch:
			if e.Type != w {
				t.Errorf("event %d = %s, want %s", i, e.Type, w)
			}
		default:
			t.Fatalf("missing event %d (want %s)", i, w)
		}
	}
	select {
	case e := <-ch:
		t.Errorf("unexpected extra event %s", e.Type)
	default:
	}
}
