package config

import (
	"fmt"
	"net/url"
	"time"
)

// Config holds runtime settings for the bookshelf CLI.
//
// Fields:
//   - BaseURL: scheme and host of the catalog API gateway.
//   - OnlineCheckInterval: how often the client probes server reachability.
//   - RequestTimeout: bound on every HTTP exchange; zero disables it.
//   - DatabasePath: SQLite file holding the refresh token.
//   - PagesDir: where downloaded book pages are saved.
//   - LogLevel, LogFormat: see logging.ParseLevel and logging.New.
type Config struct {
	BaseURL             string        `env:"BOOKSHELF_BASE_URL" env-description:"catalog API gateway URL"`
	OnlineCheckInterval time.Duration `env:"BOOKSHELF_ONLINE_CHECK_INTERVAL" env-description:"server reachability probe interval"`
	RequestTimeout      time.Duration `env:"BOOKSHELF_REQUEST_TIMEOUT" env-description:"HTTP request timeout, 0 for none"`
	DatabasePath        string        `env:"BOOKSHELF_DATABASE_PATH" env-description:"local SQLite database file"`
	PagesDir            string        `env:"BOOKSHELF_PAGES_DIR" env-description:"directory for downloaded pages"`
	LogLevel            string        `env:"BOOKSHELF_LOG_LEVEL" env-description:"debug, info, warn or error"`
	LogFormat           string        `env:"BOOKSHELF_LOG_FORMAT" env-description:"text, json or console"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BaseURL = "http://localhost:8000"
	c.OnlineCheckInterval = 3 * time.Second
	c.RequestTimeout = 0
	c.DatabasePath = "bookshelf.db"
	c.PagesDir = "pages"
	c.LogLevel = "warn"
	c.LogFormat = "console"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), environment variables and command-line flags. Later
// sources take precedence over earlier ones. Malformed input panics.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}

// Validate reports settings the client cannot run with.
func (c *Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("base url %q: scheme must be http or https", c.BaseURL)
	}
	if c.OnlineCheckInterval <= 0 {
		return fmt.Errorf("online check interval must be positive, got %s", c.OnlineCheckInterval)
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("request timeout must not be negative, got %s", c.RequestTimeout)
	}
	if c.DatabasePath == "" {
		return fmt.Errorf("database path is empty")
	}
	return nil
}
