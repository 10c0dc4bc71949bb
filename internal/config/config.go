// Package config loads the wraith dashboard configuration from YAML with
// environment variable overrides.
package config

import (
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// ---------------------------------------------------------------------------
// Configuration structs
// ---------------------------------------------------------------------------

// Config is the top-level configuration for the wraith dashboard.
type Config struct {
	Backend Backend `yaml:"backend"`
	Storage Storage `yaml:"storage"`
	Alpaca  Alpaca  `yaml:"alpaca"`
	Logging Logging `yaml:"logging"`
	UI      UI      `yaml:"ui"`
}

// Backend locates the wraith backend service the dashboard renders.
type Backend struct {
	BaseURL         string `yaml:"base_url"`
	StreamURL       string `yaml:"stream_url"`
	PollSeconds     int    `yaml:"poll_seconds"`
	RateLimitPerMin int    `yaml:"rate_limit_per_min"`
}

// Storage holds paths for local persistence: the session database and the
// signal archive.
type Storage struct {
	DataDir     string `yaml:"data_dir"`
	SessionPath string `yaml:"session_path"`
}

// Alpaca holds optional credentials for the direct market-data fallback.
// When the key is empty the fallback source is disabled.
type Alpaca struct {
	APIKey    string `yaml:"api_key"`
	APISecret string `yaml:"api_secret"`
	DataURL   string `yaml:"data_url"`
}

// Logging configures the application logger.
type Logging struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

// UI holds presentation settings.
type UI struct {
	Locale    string   `yaml:"locale"`
	Watchlist []string `yaml:"watchlist"`
}

// ---------------------------------------------------------------------------
// Loading
// ---------------------------------------------------------------------------

// Load reads the YAML configuration file at the given path, parses it into a
// Config struct, applies defaults, and then applies environment variable
// overrides.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	applyDefaults(cfg)
	applyEnvOverrides(cfg)

	return cfg, nil
}

// applyDefaults fills in values the YAML file may omit.
func applyDefaults(cfg *Config) {
	if cfg.Backend.PollSeconds <= 0 {
		cfg.Backend.PollSeconds = 30
	}
	if cfg.Backend.RateLimitPerMin <= 0 {
		cfg.Backend.RateLimitPerMin = 60
	}
	if cfg.Storage.DataDir == "" {
		cfg.Storage.DataDir = "data"
	}
	if cfg.Storage.SessionPath == "" {
		cfg.Storage.SessionPath = "data/session.db"
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.File == "" {
		cfg.Logging.File = "wraith.log"
	}
	if cfg.UI.Locale == "" {
		cfg.UI.Locale = "en"
	}
}

// applyEnvOverrides checks well-known environment variables and overrides the
// corresponding configuration fields when they are set.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("WRAITH_BACKEND_URL"); v != "" {
		cfg.Backend.BaseURL = v
	}
	if v := os.Getenv("WRAITH_STREAM_URL"); v != "" {
		cfg.Backend.StreamURL = v
	}
	if v := os.Getenv("WRAITH_POLL_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Backend.PollSeconds = n
		}
	}
	if v := os.Getenv("WRAITH_DATA_DIR"); v != "" {
		cfg.Storage.DataDir = v
	}
	if v := os.Getenv("WRAITH_SESSION_PATH"); v != "" {
		cfg.Storage.SessionPath = v
	}
	if v := os.Getenv("ALPACA_API_KEY"); v != "" {
		cfg.Alpaca.APIKey = v
	}
	if v := os.Getenv("ALPACA_API_SECRET"); v != "" {
		cfg.Alpaca.APISecret = v
	}
	if v := os.Getenv("WRAITH_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("WRAITH_LOCALE"); v != "" {
		cfg.UI.Locale = v
	}
}
