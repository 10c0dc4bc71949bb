package feed

import (
	"context"
	"fmt"
	"time"

	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"

	"wraith/internal/domain"
)

// AlpacaSource fetches watchlist quotes directly from the Alpaca market-data
// API. It is the fallback when the backend exposes no quote endpoint or the
// feed is down; signals and portfolio state always come from the backend.
type AlpacaSource struct {
	client *marketdata.Client
}

// NewAlpacaSource creates an AlpacaSource with the given credentials.
// dataURL may be empty to use the default endpoint.
func NewAlpacaSource(apiKey, apiSecret, dataURL string) *AlpacaSource {
	opts := marketdata.ClientOpts{
		APIKey:    apiKey,
		APISecret: apiSecret,
	}
	if dataURL != "" {
		opts.BaseURL = dataURL
	}
	return &AlpacaSource{client: marketdata.NewClient(opts)}
}

// GetQuotes fetches snapshots for symbols and converts them to quotes.
// Symbols with no snapshot or no trade yet are skipped.
func (a *AlpacaSource) GetQuotes(ctx context.Context, symbols []string) ([]domain.Quote, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if len(symbols) == 0 {
		return nil, nil
	}

	snapshots, err := a.client.GetSnapshots(symbols, marketdata.GetSnapshotRequest{})
	if err != nil {
		return nil, fmt.Errorf("GetSnapshots: %w", err)
	}

	quotes := make([]domain.Quote, 0, len(snapshots))
	for symbol, snap := range snapshots {
		if snap == nil || snap.LatestTrade == nil {
			continue
		}
		q := domain.Quote{
			Symbol:    symbol,
			Price:     snap.LatestTrade.Price,
			Timestamp: snap.LatestTrade.Timestamp,
		}
		if snap.PrevDailyBar != nil {
			q.PrevClose = snap.PrevDailyBar.Close
		}
		if q.Timestamp.IsZero() {
			q.Timestamp = time.Now().UTC()
		}
		quotes = append(quotes, q)
	}
	return quotes, nil
}
