package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/recipebox/internal/flagx"
)

// parseFlags overlays cfg with -d, -ld, -fd and -log. Other arguments are
// filtered out first so foreign flags do not fail the parse.
func parseFlags(cfg *Config, args []string) {
	args = flagx.FilterArgs(args, []string{"-d", "-ld", "-fd", "-log"})

	fs := flag.NewFlagSet("recipebox", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "database DSN (SQLite path or postgres URL)")
	loginDelay := fs.Int("ld", int(cfg.LoginDelay.Milliseconds()), "simulated login delay (ms)")
	fetchDelay := fs.Int("fd", int(cfg.FetchDelay.Milliseconds()), "simulated fetch delay (ms)")
	fs.StringVar(&cfg.LogLevel, "log", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.LoginDelay = time.Duration(*loginDelay) * time.Millisecond
	cfg.FetchDelay = time.Duration(*fetchDelay) * time.Millisecond
}
