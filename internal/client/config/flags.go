package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/xferclient/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-b string     base URL of the transfer backend
//	-t duration   per-request timeout, e.g. 30s (0 = transport default)
//	-m string     config merge strategy: overwrite | preserve-edits
//	-l string     log level: debug | info | warn | error
//
// os.Args is filtered with flagx.FilterArgs first so flags owned by other
// components (-c) do not break parsing.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-b", "-t", "-m", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.BackendURL, "b", cfg.BackendURL, "base URL of the transfer backend")
	fs.DurationVar(&cfg.RequestTimeout, "t", cfg.RequestTimeout, "request timeout (0 = transport default)")
	fs.StringVar(&cfg.MergeStrategy, "m", cfg.MergeStrategy, "config merge strategy: overwrite or preserve-edits")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level: debug, info, warn, error")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
