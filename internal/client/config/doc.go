// Package config loads runtime configuration for the bookshelf CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. BOOKSHELF_* environment variables (see parseEnv).
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   catalog API gateway URL
//	-i int      online status check interval (seconds)
//	-d string   local SQLite database file
//	-l string   log level
//
// # JSON schema
//
// The JSON loader uses timex.Duration for intervals, so values can be either
// strings like "3s" or integer nanoseconds. Absent keys keep earlier values:
//
//	{
//	  "base_url": "http://localhost:8000",
//	  "online_check_interval": "3s",
//	  "request_timeout": "15s",
//	  "database_path": "bookshelf.db",
//	  "pages_dir": "pages",
//	  "log_level": "info",
//	  "log_format": "json"
//	}
//
// Environment variables use Go duration syntax for intervals; EnvUsage lists
// them.
package config
