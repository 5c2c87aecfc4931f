// Package config loads settings from defaults, the user config file, and
// environment variables. Flags applied in main override all of it.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
)

// Defaults.
const (
	DefaultAPIBaseURL = "http://localhost:8000/api"
	DefaultDebounceMS = 500
	DefaultTimeoutSec = 15

	stateFileName = "todoAppState.json"
	logFileName   = "todoapp.log"
	confFileName  = "todoapp.toml"
)

// Config holds the full configuration.
type Config struct {
	APIBaseURL string `toml:"api_base_url"`
	StateFile  string `toml:"state_file"`
	LogFile    string `toml:"log_file"`
	DebounceMS int    `toml:"debounce_ms"`
	TimeoutSec int    `toml:"timeout_seconds"`
}

// Debounce returns the search quiescence window.
func (c *Config) Debounce() time.Duration {
	return time.Duration(c.DebounceMS) * time.Millisecond
}

// Timeout returns the remote-call timeout.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSec) * time.Second
}

// Load reads configuration in priority order: defaults, then the user config
// file (if any), then TODOAPP_* environment variables.
func Load() (*Config, error) {
	return LoadFrom(findConfigFile())
}

// LoadFrom is Load with an explicit config file path; path == "" skips the
// file step.
func LoadFrom(path string) (*Config, error) {
	cfg := &Config{
		APIBaseURL: DefaultAPIBaseURL,
		StateFile:  filepath.Join(dataDir(), stateFileName),
		LogFile:    filepath.Join(dataDir(), logFileName),
		DebounceMS: DefaultDebounceMS,
		TimeoutSec: DefaultTimeoutSec,
	}

	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", path, err)
		}
	}

	loadFromEnv(cfg)
	return cfg, nil
}

func loadFromEnv(cfg *Config) {
	if v := os.Getenv("TODOAPP_API_URL"); v != "" {
		cfg.APIBaseURL = v
	}
	if v := os.Getenv("TODOAPP_STATE_FILE"); v != "" {
		cfg.StateFile = v
	}
	if v := os.Getenv("TODOAPP_LOG_FILE"); v != "" {
		cfg.LogFile = v
	}
	if v := os.Getenv("TODOAPP_DEBOUNCE_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.DebounceMS = n
		}
	}
	if v := os.Getenv("TODOAPP_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.TimeoutSec = n
		}
	}
}

// findConfigFile returns the user config path if the file exists, else "".
func findConfigFile() string {
	p := filepath.Join(configDir(), confFileName)
	if _, err := os.Stat(p); err == nil {
		return p
	}
	return ""
}

func configDir() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "todoapp")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "todoapp")
}

// dataDir is where the snapshot and the log live (~/.todoapp).
func dataDir() string {
	if v := os.Getenv("XDG_DATA_HOME"); v != "" {
		return filepath.Join(v, "todoapp")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".todoapp")
}
