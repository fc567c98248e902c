package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

const (
	EnvBackendURL     = "XFER_BACKEND_URL"
	EnvRequestTimeout = "XFER_REQUEST_TIMEOUT"
	EnvMergeStrategy  = "XFER_MERGE"
	EnvLogLevel       = "XFER_LOG_LEVEL"
)

// dotenvFiles are loaded before the environment is read. Variables already
// set in the process environment are not overridden.
var dotenvFiles = []string{".env"}

// parseEnv overlays Config with XFER_* variables. An unparsable
// XFER_REQUEST_TIMEOUT panics.
func parseEnv(cfg *Config) {
	for _, f := range dotenvFiles {
		if _, err := os.Stat(f); err == nil {
			if err := godotenv.Load(f); err != nil {
				panic(err)
			}
		}
	}

	if v := os.Getenv(EnvBackendURL); v != "" {
		cfg.BackendURL = v
	}
	if v := os.Getenv(EnvRequestTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(err)
		}
		cfg.RequestTimeout = d
	}
	if v := os.Getenv(EnvMergeStrategy); v != "" {
		cfg.MergeStrategy = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}
}
