// Package i18n resolves UI strings from per-locale YAML catalogs with
// fallback to the built-in English messages.
package i18n

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// defaultMessages is the built-in English catalog. File catalogs override
// these key by key.
var defaultMessages = map[string]string{
	"tab.signals":         "Signals",
	"tab.portfolio":       "Portfolio",
	"tab.quotes":          "Quotes",
	"card.equity":         "Equity",
	"card.cash":           "Cash",
	"card.day_pnl":        "Day P&L",
	"signals.empty":       "No signals yet",
	"quotes.empty":        "No quotes yet",
	"portfolio.empty":     "No open positions",
	"feed.connecting":     "Connecting to feed...",
	"feed.disconnected":   "Feed disconnected, retrying",
	"hint.watchlist":      "Set ui.watchlist in your config to track quotes",
	"hint.dismiss":        "Press x to dismiss a hint",
	"hint.tabs":           "Use tab / shift+tab to switch views",
	"hint.signal_detail":  "Use up/down to browse signals",
	"footer.quit":         "q quit",
	"footer.next_tab":     "tab next",
	"footer.dismiss_hint": "x got it",
}

// Catalog resolves message keys for one locale.
type Catalog struct {
	locale   string
	messages map[string]string
}

// NewCatalog returns a Catalog serving only the built-in English messages.
func NewCatalog() *Catalog {
	return &Catalog{locale: "en", messages: copyMap(defaultMessages)}
}

// Load builds a Catalog for locale from YAML files in dir. It layers, in
// order: built-in English, <dir>/en.yaml, <dir>/<locale>.yaml. Missing files
// are skipped; a malformed file is an error.
func Load(dir, locale string) (*Catalog, error) {
	c := NewCatalog()
	c.locale = locale

	layers := []string{"en"}
	if locale != "" && locale != "en" {
		layers = append(layers, locale)
	}
	for _, l := range layers {
		if err := c.merge(filepath.Join(dir, l+".yaml")); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// merge overlays the messages from one catalog file, if it exists.
func (c *Catalog) merge(path string) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading catalog %s: %w", path, err)
	}

	var msgs map[string]string
	if err := yaml.Unmarshal(data, &msgs); err != nil {
		return fmt.Errorf("parsing catalog %s: %w", path, err)
	}
	for k, v := range msgs {
		c.messages[k] = v
	}
	return nil
}

// Locale returns the locale the catalog was built for.
func (c *Catalog) Locale() string {
	return c.locale
}

// T returns the message for key. An unknown key returns the key itself, so a
// missing translation shows up on screen instead of blanking a label.
func (c *Catalog) T(key string) string {
	if msg, ok := c.messages[key]; ok {
		return msg
	}
	return key
}

// Tf returns the message for key formatted with args.
func (c *Catalog) Tf(key string, args ...any) string {
	return fmt.Sprintf(c.T(key), args...)
}

func copyMap(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
