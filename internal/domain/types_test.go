package domain

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestPositionPnL(t *testing.T) {
	p := Position{Symbol: "AAPL", Qty: 10, AvgEntry: 100, CurrentPrice: 110}

	if got := p.MarketValue(); !almostEqual(got, 1100) {
		t.Errorf("MarketValue = %v, want 1100", got)
	}
	if got := p.UnrealizedPnL(); !almostEqual(got, 100) {
		t.Errorf("UnrealizedPnL = %v, want 100", got)
	}
	if got := p.UnrealizedPnLPct(); !almostEqual(got, 0.1) {
		t.Errorf("UnrealizedPnLPct = %v, want 0.1", got)
	}

	// Short positions lose when the price rises.
	short := Position{Symbol: "TSLA", Qty: -5, AvgEntry: 200, CurrentPrice: 210}
	if got := short.UnrealizedPnL(); !almostEqual(got, -50) {
		t.Errorf("short UnrealizedPnL = %v, want -50", got)
	}

	// Zero-cost position reports zero percentage rather than dividing by zero.
	empty := Position{}
	if got := empty.UnrealizedPnLPct(); got != 0 {
		t.Errorf("zero-cost UnrealizedPnLPct = %v, want 0", got)
	}
}

func TestQuoteChangePct(t *testing.T) {
	q := Quote{Symbol: "AAPL", Price: 101, PrevClose: 100}
	if got := q.ChangePct(); !almostEqual(got, 0.01) {
		t.Errorf("ChangePct = %v, want 0.01", got)
	}

	noPrev := Quote{Symbol: "IPO", Price: 40}
	if got := noPrev.ChangePct(); got != 0 {
		t.Errorf("ChangePct without prev close = %v, want 0", got)
	}
}

func TestSignalDirections(t *testing.T) {
	if SignalBuy != "buy" || SignalSell != "sell" || SignalNeutral != "neutral" {
		t.Errorf("unexpected direction constants: %q %q %q", SignalBuy, SignalSell, SignalNeutral)
	}
}
