package config

import (
	"flag"
	"os"
	"time"

	"stocktrack/internal/flagx"
)

// parseFlags overlays cfg with values from command-line flags.
//
// Supported flags:
//
//	-a string   base URL of the inventory backend
//	-d string   local database path/DSN
//	-t int      request timeout in seconds
//	-p int      ping interval in seconds
//
// Arguments are filtered through flagx.FilterArgs so flags owned by other
// components do not interfere.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-t", "-p"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerBaseURL, "a", cfg.ServerBaseURL, "base URL of the inventory backend")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "local database path")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	ping := fs.Int("p", int(cfg.PingInterval.Seconds()), "ping interval (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
	cfg.PingInterval = time.Duration(*ping) * time.Second
}
