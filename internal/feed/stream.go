package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/gorilla/websocket"

	"wraith/internal/domain"
)

// Stream mirrors backend push updates into the model over a WebSocket. It
// reconnects with exponential backoff and flags connectivity on the model so
// the UI can show a degraded-feed notice.
type Stream struct {
	url   string
	model *Model
	log   *slog.Logger
}

// NewStream creates a Stream for the given WebSocket URL.
func NewStream(url string, model *Model, log *slog.Logger) *Stream {
	return &Stream{url: url, model: model, log: log}
}

// envelope is the backend's push message framing.
type envelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// Run connects and consumes push messages until ctx is cancelled,
// reconnecting on failure with backoff capped at 30s.
func (s *Stream) Run(ctx context.Context) error {
	backoff := time.Second
	for {
		err := s.runOnce(ctx)
		s.model.SetConnected(false)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		s.log.Warn("stream disconnected", "error", err, "retry_in", backoff)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
			if backoff < 30*time.Second {
				backoff *= 2
			}
		}
	}
}

// runOnce dials and reads messages until the connection drops.
func (s *Stream) runOnce(ctx context.Context) error {
	dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}
	conn, _, err := dialer.DialContext(ctx, s.url, nil)
	if err != nil {
		return fmt.Errorf("dial %s: %w", s.url, err)
	}
	defer conn.Close()

	s.model.SetConnected(true)
	s.log.Info("stream connected", "url", s.url)

	// Close the connection when ctx ends so ReadMessage unblocks.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			return fmt.Errorf("read: %w", err)
		}
		if err := s.handleMessage(raw); err != nil {
			// A malformed message is logged and skipped, not fatal.
			s.log.Warn("handling stream message", "error", err)
		}
	}
}

// handleMessage decodes one push message and applies it to the model.
func (s *Stream) handleMessage(raw []byte) error {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("decoding envelope: %w", err)
	}

	switch env.Type {
	case "signal":
		var sig domain.Signal
		if err := json.Unmarshal(env.Data, &sig); err != nil {
			return fmt.Errorf("decoding signal: %w", err)
		}
		s.model.AddSignal(sig)
	case "portfolio":
		var p domain.PortfolioSummary
		if err := json.Unmarshal(env.Data, &p); err != nil {
			return fmt.Errorf("decoding portfolio: %w", err)
		}
		s.model.SetPortfolio(p)
	case "quote":
		var q domain.Quote
		if err := json.Unmarshal(env.Data, &q); err != nil {
			return fmt.Errorf("decoding quote: %w", err)
		}
		s.model.SetQuote(q)
	default:
		// Unknown message types from newer backends are ignored.
	}
	return nil
}
