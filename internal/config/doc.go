// Package config handles loading and parsing the dashboard's configuration
// file.
//
// # Overview
//
// This package reads a small TOML file describing how to reach the Syncthing
// daemon and where the dashboard keeps its own files. It deliberately knows
// nothing about the daemon's own configuration; that is fetched live over
// the REST API.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/synctui/config.toml (default)
//  3. If the config file doesn't exist, fall back to hardcoded defaults
//  4. If the file exists but fields are missing/empty, use defaults
//
// # Default Values
//
//   - Config file: ~/.config/synctui/config.toml
//   - Daemon address: 127.0.0.1:8384
//   - Event database: ~/.local/share/synctui/events.db
//   - Log file: ~/.local/share/synctui/synctui.log
//
// The API key has no default. The daemon generates one at first start and
// shows it in its GUI under Actions > Settings; it must be supplied either
// in the config file or on the command line.
//
// # TOML Format
//
// Example config.toml:
//
//	address = "127.0.0.1:8384"
//	api_key = "abcDEF123"
//	event_db = "~/.local/share/synctui/events.db"
//	log_file = "~/.local/share/synctui/synctui.log"
//
// All fields except api_key are optional. Tilde expansion is performed
// automatically on paths.
//
// # Error Handling
//
// Load returns errors for:
//   - Path expansion failures (e.g., cannot determine home directory)
//   - File read errors (except os.ErrNotExist, which triggers defaults)
//   - TOML parsing errors
//
// Missing config files are NOT an error - defaults are used instead, and
// the API key can still arrive via the -api-key flag. Validate reports
// ErrMissingAPIKey once all sources have been merged.
//
// # Usage Example
//
//	cfg, err := config.Load("")
//	if err != nil {
//		log.Fatalf("failed to load config: %v", err)
//	}
//	if key := *apiKeyFlag; key != "" {
//		cfg.APIKey = key
//	}
//	if err := cfg.Validate(); err != nil {
//		log.Fatal(err)
//	}
//
// The config package is read-only and stateless - it loads configuration
// once at startup and returns an immutable Config struct. No global state
// or singleton patterns are used.
package config
