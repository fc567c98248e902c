// Package config loads runtime configuration for the transfer client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Environment variables, optionally read from a .env file (see parseEnv).
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-b string     base URL of the transfer backend
//	-t duration   request timeout
//	-m string     merge strategy for server defaults
//	-l string     log level
//
// Environment
//
//	XFER_BACKEND_URL, XFER_REQUEST_TIMEOUT, XFER_MERGE, XFER_LOG_LEVEL
//
// # JSON schema
//
// The JSON loader uses timex.Duration, so the timeout can be either a string
// like "30s" or integer nanoseconds:
//
//	{
//	  "backend_url": "http://127.0.0.1:5005",
//	  "request_timeout": "30s",
//	  "merge_strategy": "overwrite",
//	  "log_level": "info"
//	}
package config
