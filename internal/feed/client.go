package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"wraith/internal/domain"
)

// Client is a thin REST wrapper over the wraith backend API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a backend API client.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// GetSignals retrieves the current trading signals.
func (c *Client) GetSignals(ctx context.Context) ([]domain.Signal, error) {
	var signals []domain.Signal
	if err := c.getJSON(ctx, "/api/v1/signals", nil, &signals); err != nil {
		return nil, fmt.Errorf("GetSignals: %w", err)
	}
	return signals, nil
}

// GetPortfolio retrieves the portfolio summary.
func (c *Client) GetPortfolio(ctx context.Context) (*domain.PortfolioSummary, error) {
	var p domain.PortfolioSummary
	if err := c.getJSON(ctx, "/api/v1/portfolio", nil, &p); err != nil {
		return nil, fmt.Errorf("GetPortfolio: %w", err)
	}
	return &p, nil
}

// GetQuotes retrieves latest quotes for the given symbols.
func (c *Client) GetQuotes(ctx context.Context, symbols []string) ([]domain.Quote, error) {
	if len(symbols) == 0 {
		return nil, nil
	}
	q := url.Values{"symbols": []string{strings.Join(symbols, ",")}}
	var quotes []domain.Quote
	if err := c.getJSON(ctx, "/api/v1/quotes", q, &quotes); err != nil {
		return nil, fmt.Errorf("GetQuotes: %w", err)
	}
	return quotes, nil
}

// getJSON performs a GET against path and decodes the JSON response into out.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s: unexpected status %s", path, resp.Status)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: decoding response: %w", path, err)
	}
	return nil
}
