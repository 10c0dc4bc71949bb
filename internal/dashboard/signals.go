package dashboard

import (
	"sort"

	"wraith/internal/domain"
)

// DirectionCounts holds per-direction signal totals for the summary card.
type DirectionCounts struct {
	Buy     int
	Sell    int
	Neutral int
}

// Total returns the overall signal count.
func (c DirectionCounts) Total() int {
	return c.Buy + c.Sell + c.Neutral
}

// CountByDirection tallies signals per direction. Unknown directions count
// as neutral.
func CountByDirection(signals []domain.Signal) DirectionCounts {
	var c DirectionCounts
	for _, s := range signals {
		switch s.Direction {
		case domain.SignalBuy:
			c.Buy++
		case domain.SignalSell:
			c.Sell++
		default:
			c.Neutral++
		}
	}
	return c
}

// TopByConfidence returns up to limit signals ordered by descending
// confidence. Equal confidence preserves the input order, so fresh pushes
// stay ahead of stale ones.
func TopByConfidence(signals []domain.Signal, limit int) []domain.Signal {
	out := append([]domain.Signal(nil), signals...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Confidence > out[j].Confidence
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// FilterBySymbol returns the signals for one symbol, preserving order.
func FilterBySymbol(signals []domain.Signal, symbol string) []domain.Signal {
	var out []domain.Signal
	for _, s := range signals {
		if s.Symbol == symbol {
			out = append(out, s)
		}
	}
	return out
}
