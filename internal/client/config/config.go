package config

import (
	"os"
	"time"
)

// Config holds runtime settings for the recipebox CLI.
//
// DatabaseDSN is either a SQLite file path (":memory:" for a throwaway
// store) or a postgres:// URL. The delays emulate backend latency.
type Config struct {
	DatabaseDSN string
	LoginDelay  time.Duration
	FetchDelay  time.Duration
	LogLevel    string
}

func (c *Config) LoadDefaults() {
	c.DatabaseDSN = "data/recipebox.db"
	c.LoginDelay = 1000 * time.Millisecond
	c.FetchDelay = 800 * time.Millisecond
	c.LogLevel = "warn"
}

// LoadConfig applies defaults, then the JSON file named by -c/-config, then
// flags. Later sources win. Malformed input panics.
func LoadConfig() *Config {
	return load(os.Args[1:])
}

func load(args []string) *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg, args)
	parseFlags(cfg, args)
	return cfg
}
