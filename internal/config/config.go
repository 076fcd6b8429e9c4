package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures everything the dashboard needs to reach and mirror a
// Syncthing daemon.
type Config struct {
	// Address is the daemon's GUI/REST endpoint.
	Address string
	// APIKey authenticates REST calls. The daemon prints it in its GUI
	// settings; there is no workable default.
	APIKey string
	// EventDBPath is where the persistent event history lives.
	EventDBPath string
	// LogFile receives the dashboard's own log output, kept away from the
	// terminal the UI draws on.
	LogFile string
}

const (
	defaultConfigPath = "~/.config/synctui/config.toml"
	defaultAddress    = "127.0.0.1:8384"
	defaultEventDB    = "~/.local/share/synctui/events.db"
	defaultLogFile    = "~/.local/share/synctui/synctui.log"
)

// ErrMissingAPIKey is returned by Validate when no API key was configured.
var ErrMissingAPIKey = errors.New("no API key configured")

// Load locates and parses the config, falling back to defaults when the file
// is missing. A missing API key is not an error here; it may still arrive
// from the command line.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Address:     defaultAddress,
		EventDBPath: mustExpand(defaultEventDB),
		LogFile:     mustExpand(defaultLogFile),
	}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		Address string `toml:"address"`
		APIKey  string `toml:"api_key"`
		EventDB string `toml:"event_db"`
		LogFile string `toml:"log_file"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if address := strings.TrimSpace(raw.Address); address != "" {
		cfg.Address = address
	}
	cfg.APIKey = strings.TrimSpace(raw.APIKey)
	if eventDB := strings.TrimSpace(raw.EventDB); eventDB != "" {
		cfg.EventDBPath = mustExpand(eventDB)
	}
	if logFile := strings.TrimSpace(raw.LogFile); logFile != "" {
		cfg.LogFile = mustExpand(logFile)
	}

	return cfg, nil
}

// Validate checks that the config is complete enough to talk to a daemon.
func (c Config) Validate() error {
	if strings.TrimSpace(c.APIKey) == "" {
		return ErrMissingAPIKey
	}
	return nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
