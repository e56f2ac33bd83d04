// Package config loads runtime settings for the stocktrack CLI. Values are
// layered: defaults, then an optional JSON file (-c/-config), then
// command-line flags, with later sources taking precedence.
package config

import "time"

// Config holds runtime settings for the stocktrack CLI.
//
// Fields:
//   - ServerBaseURL: base URL of the inventory backend, e.g. "http://localhost:5000".
//   - DatabaseDSN: path/DSN of the local sqlite database holding the
//     persisted session credential.
//   - RequestTimeout: per-request deadline for API calls.
//   - PingInterval: how often the background watcher probes server
//     reachability.
type Config struct {
	ServerBaseURL  string
	DatabaseDSN    string
	RequestTimeout time.Duration
	PingInterval   time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://localhost:5000"
	c.DatabaseDSN = "stocktrack.db"
	c.RequestTimeout = 15 * time.Second
	c.PingInterval = 30 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if a config file was given) and command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJSON(cfg)
	parseFlags(cfg)
	return cfg
}
