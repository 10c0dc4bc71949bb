package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"wraith/internal/domain"
)

func TestClientGetSignals(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/signals" {
			t.Errorf("path = %s, want /api/v1/signals", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":"s1","symbol":"AAPL","direction":"buy","confidence":0.8,"price":185.5}]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	signals, err := c.GetSignals(context.Background())
	if err != nil {
		t.Fatalf("GetSignals: %v", err)
	}
	if len(signals) != 1 {
		t.Fatalf("got %d signals, want 1", len(signals))
	}
	s := signals[0]
	if s.ID != "s1" || s.Symbol != "AAPL" || s.Direction != domain.SignalBuy || s.Confidence != 0.8 {
		t.Errorf("signal = %+v", s)
	}
}

func TestClientGetPortfolio(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/portfolio" {
			t.Errorf("path = %s, want /api/v1/portfolio", r.URL.Path)
		}
		w.Write([]byte(`{"equity":15000,"cash":5000,"day_pnl":120.5,"positions":[{"symbol":"AAPL","qty":10,"avg_entry":100,"current_price":110}]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	p, err := c.GetPortfolio(context.Background())
	if err != nil {
		t.Fatalf("GetPortfolio: %v", err)
	}
	if p.Equity != 15000 || len(p.Positions) != 1 {
		t.Errorf("portfolio = %+v", p)
	}
	if got := p.Positions[0].UnrealizedPnL(); got != 100 {
		t.Errorf("position PnL = %v, want 100", got)
	}
}

func TestClientGetQuotes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("symbols"); got != "AAPL,TSLA" {
			t.Errorf("symbols query = %q, want AAPL,TSLA", got)
		}
		w.Write([]byte(`[{"symbol":"AAPL","price":185.5,"prev_close":180}]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	quotes, err := c.GetQuotes(context.Background(), []string{"AAPL", "TSLA"})
	if err != nil {
		t.Fatalf("GetQuotes: %v", err)
	}
	if len(quotes) != 1 || quotes[0].Price != 185.5 {
		t.Errorf("quotes = %v", quotes)
	}

	// No symbols, no request.
	if quotes, err := c.GetQuotes(context.Background(), nil); err != nil || quotes != nil {
		t.Errorf("GetQuotes(nil) = (%v, %v), want (nil, nil)", quotes, err)
	}
}

func TestClientErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	if _, err := c.GetSignals(context.Background()); err == nil {
		t.Fatal("GetSignals should fail on 500")
	}
}

func TestClientBadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{not json`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	if _, err := c.GetSignals(context.Background()); err == nil {
		t.Fatal("GetSignals should fail on malformed body")
	}
}
