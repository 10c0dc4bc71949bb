package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestPollerRefresh(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/signals":
			w.Write([]byte(`[{"id":"s1","symbol":"AAPL","direction":"buy"}]`))
		case "/api/v1/portfolio":
			w.Write([]byte(`{"equity":4200}`))
		case "/api/v1/quotes":
			w.Write([]byte(`[{"symbol":"AAPL","price":185.5}]`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	m := NewModel()
	p := NewPoller(NewClient(srv.URL), m, []string{"AAPL"}, time.Minute, 600, discardLogger())

	p.refresh(context.Background())

	if got := m.Signals(); len(got) != 1 || got[0].ID != "s1" {
		t.Errorf("signals = %v, want [s1]", got)
	}
	if pf, ok := m.Portfolio(); !ok || pf.Equity != 4200 {
		t.Errorf("portfolio = (%v, %v), want equity 4200", pf, ok)
	}
	if q := m.Quotes(); len(q) != 1 || q[0].Price != 185.5 {
		t.Errorf("quotes = %v", q)
	}
}

func TestPollerRefreshPartialFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/v1/portfolio" {
			http.Error(w, "down", http.StatusBadGateway)
			return
		}
		switch r.URL.Path {
		case "/api/v1/signals":
			w.Write([]byte(`[{"id":"s1","symbol":"AAPL","direction":"buy"}]`))
		case "/api/v1/quotes":
			w.Write([]byte(`[]`))
		}
	}))
	defer srv.Close()

	m := NewModel()
	p := NewPoller(NewClient(srv.URL), m, []string{"AAPL"}, time.Minute, 600, discardLogger())

	// A failing endpoint must not stop the other refreshes.
	p.refresh(context.Background())

	if got := m.Signals(); len(got) != 1 {
		t.Errorf("signals = %v, want one signal despite portfolio failure", got)
	}
	if _, ok := m.Portfolio(); ok {
		t.Error("portfolio should remain absent after failed fetch")
	}
}
