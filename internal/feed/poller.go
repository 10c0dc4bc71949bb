package feed

import (
	"context"
	"log/slog"
	"time"

	"wraith/internal/util"
)

// Poller periodically refreshes the model over the REST API. It backs up the
// WebSocket stream: a missed push is corrected on the next poll.
type Poller struct {
	client   *Client
	model    *Model
	symbols  []string
	interval time.Duration
	limiter  *util.RateLimiter
	log      *slog.Logger
}

// NewPoller creates a Poller refreshing model every interval, keeping within
// ratePerMin requests per minute across its three endpoints.
func NewPoller(client *Client, model *Model, symbols []string, interval time.Duration, ratePerMin int, log *slog.Logger) *Poller {
	return &Poller{
		client:   client,
		model:    model,
		symbols:  symbols,
		interval: interval,
		limiter:  util.NewRateLimiter(ratePerMin),
		log:      log,
	}
}

// Run polls until ctx is cancelled. Individual fetch failures are logged and
// retried on the next cycle; Run only returns on context cancellation.
func (p *Poller) Run(ctx context.Context) error {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.refresh(ctx)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			p.refresh(ctx)
		}
	}
}

// refresh fetches all three endpoints and applies the results to the model.
func (p *Poller) refresh(ctx context.Context) {
	if err := p.limiter.Wait(ctx); err != nil {
		return
	}
	if signals, err := p.client.GetSignals(ctx); err != nil {
		p.log.Warn("polling signals", "error", err)
	} else {
		p.model.SetSignals(signals)
	}

	if err := p.limiter.Wait(ctx); err != nil {
		return
	}
	if portfolio, err := p.client.GetPortfolio(ctx); err != nil {
		p.log.Warn("polling portfolio", "error", err)
	} else {
		p.model.SetPortfolio(*portfolio)
	}

	if len(p.symbols) == 0 {
		return
	}
	if err := p.limiter.Wait(ctx); err != nil {
		return
	}
	if quotes, err := p.client.GetQuotes(ctx, p.symbols); err != nil {
		p.log.Warn("polling quotes", "error", err)
	} else {
		for _, q := range quotes {
			p.model.SetQuote(q)
		}
	}
}
