// Package config loads runtime configuration for the recipebox CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c or -config.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-d string   database DSN: SQLite path, ":memory:" or postgres:// URL
//	-ld int     simulated login delay (milliseconds)
//	-fd int     simulated protected-data delay (milliseconds)
//	-log string log level: debug, info, warn or error
//
// # JSON schema
//
// Delays use timex.Duration, so they may be strings like "800ms" or integer
// nanoseconds. Absent fields keep their default:
//
//	{
//	  "database_dsn": "data/recipebox.db",
//	  "login_delay": "1s",
//	  "fetch_delay": "800ms",
//	  "log_level": "info"
//	}
package config
