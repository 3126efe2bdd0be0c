// Package config handles configuration for the CLI client, including
// defaults, JSON overlay, and command-line flags.
package config

import "time"

// Config holds runtime settings for the Quoteshelf CLI.
//
// Fields:
//   - ServerURL: base URL of the backend HTTP API.
//   - DatabasePath: path of the local sqlite metadata database.
//   - TickInterval: how often the session countdown re-checks the wall clock.
type Config struct {
	ServerURL    string
	DatabasePath string
	TickInterval time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:8080"
	c.DatabasePath = "quoteshelf.db"
	c.TickInterval = 1 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
