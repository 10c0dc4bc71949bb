// Package domain defines the view-model types the dashboard renders:
// trading signals, portfolio state, and quotes as served by the wraith
// backend.
package domain

import "time"

// SignalDirection is the side a signal recommends.
type SignalDirection string

// Signal directions.
const (
	SignalBuy     SignalDirection = "buy"
	SignalSell    SignalDirection = "sell"
	SignalNeutral SignalDirection = "neutral"
)

// Signal is one trading signal produced by the backend.
type Signal struct {
	ID         string          `json:"id"`
	Symbol     string          `json:"symbol"`
	Direction  SignalDirection `json:"direction"`
	Confidence float64         `json:"confidence"` // 0..1
	Price      float64         `json:"price"`
	Strategy   string          `json:"strategy"`
	CreatedAt  time.Time       `json:"created_at"`
}

// Position is one open portfolio position.
type Position struct {
	Symbol       string  `json:"symbol"`
	Qty          float64 `json:"qty"`
	AvgEntry     float64 `json:"avg_entry"`
	CurrentPrice float64 `json:"current_price"`
}

// MarketValue returns the position's value at the current price.
func (p Position) MarketValue() float64 {
	return p.Qty * p.CurrentPrice
}

// UnrealizedPnL returns the open profit or loss in dollars.
func (p Position) UnrealizedPnL() float64 {
	return p.Qty * (p.CurrentPrice - p.AvgEntry)
}

// UnrealizedPnLPct returns the open profit or loss as a fraction of cost.
// Zero-cost positions report 0.
func (p Position) UnrealizedPnLPct() float64 {
	cost := p.Qty * p.AvgEntry
	if cost == 0 {
		return 0
	}
	return p.UnrealizedPnL() / cost
}

// PortfolioSummary is the account-level state the dashboard's header cards
// render.
type PortfolioSummary struct {
	Equity     float64    `json:"equity"`
	Cash       float64    `json:"cash"`
	DayPnL     float64    `json:"day_pnl"`
	DayPnLPct  float64    `json:"day_pnl_pct"`
	Positions  []Position `json:"positions"`
	AsOf       time.Time  `json:"as_of"`
}

// Quote is a latest-price snapshot for one symbol.
type Quote struct {
	Symbol    string    `json:"symbol"`
	Price     float64   `json:"price"`
	PrevClose float64   `json:"prev_close"`
	Timestamp time.Time `json:"timestamp"`
}

// ChangePct returns the move from the previous close as a fraction, or 0
// when no previous close is known.
func (q Quote) ChangePct() float64 {
	if q.PrevClose == 0 {
		return 0
	}
	return (q.Price - q.PrevClose) / q.PrevClose
}
