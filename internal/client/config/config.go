package config

import "time"

// Config holds runtime settings for the transfer client.
//
// Fields:
//   - BackendURL: base URL of the transfer backend (http or https).
//   - RequestTimeout: per-request limit; zero leaves it to the transport.
//   - MergeStrategy: how server defaults meet user edits, "overwrite" or
//     "preserve-edits".
//   - LogLevel: debug, info, warn or error.
type Config struct {
	BackendURL     string
	RequestTimeout time.Duration
	MergeStrategy  string
	LogLevel       string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BackendURL = "http://127.0.0.1:5005"
	c.RequestTimeout = 0
	c.MergeStrategy = "overwrite"
	c.LogLevel = "info"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), the environment and command-line flags. Later sources
// take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
