package config

import "time"

// Config holds runtime settings for the back-office CLI. It is built once at
// startup and treated as read-only afterwards.
//
// Fields:
//   - APIBaseURL: base address of the backend REST API, e.g. http://localhost:8000/api.
//   - StorageDSN: SQLite file that keeps the persisted session token.
//   - RequestTimeout: upper bound for a single API call.
//   - RehydrateTimeout: upper bound for restoring a session at startup.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	APIBaseURL       string
	StorageDSN       string
	RequestTimeout   time.Duration
	RehydrateTimeout time.Duration
	LogLevel         string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:8000/api"
	c.StorageDSN = "backoffice.db"
	c.RequestTimeout = 15 * time.Second
	c.RehydrateTimeout = 10 * time.Second
	c.LogLevel = "info"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the environment (including a .env file), a JSON file and command-line flags.
// Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg, DotEnvFile)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
