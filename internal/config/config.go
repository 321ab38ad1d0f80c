// Package config provides configuration file parsing for heartwatch.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/blackwell-systems/heartwatch/internal/action"
	"github.com/blackwell-systems/heartwatch/internal/watcher"
)

// FileName is the config file looked up inside Dir().
const FileName = "config.toml"

// Dir returns the heartwatch config directory, respecting XDG_CONFIG_HOME.
// Defaults to ~/.config/heartwatch if XDG_CONFIG_HOME is not set.
func Dir() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "heartwatch"), nil
}

// Duration is a time.Duration read from a TOML string such as "90s".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(strings.TrimSpace(string(text)))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Config holds defaults for watch sessions. Command-line flags override
// every field.
//
//	poll_interval = "60s"
//	mode          = "all"
//	shell         = "/bin/sh"
//	error_action  = "logger -t heartwatch failed"
//	log_level     = "warn"
type Config struct {
	PollInterval Duration `toml:"poll_interval"`
	Mode         string   `toml:"mode"`
	Shell        string   `toml:"shell"`
	ErrorAction  string   `toml:"error_action"`
	LogLevel     string   `toml:"log_level"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		PollInterval: Duration{watcher.DefaultPollInterval},
		Mode:         watcher.AllStale.String(),
		Shell:        action.DefaultShell,
		LogLevel:     "warn",
	}
}

// Load reads the TOML file at path on top of Default(). If the file does
// not exist, the defaults are returned without an error. Unknown keys and
// invalid values are errors.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown key %q in config %s", undecoded[0].String(), path)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks value ranges and enumerations.
func (c *Config) Validate() error {
	if c.PollInterval.Duration <= 0 {
		return fmt.Errorf("poll_interval must be positive, got %v", c.PollInterval.Duration)
	}
	if _, err := watcher.ParseMode(c.Mode); err != nil {
		return err
	}
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}
