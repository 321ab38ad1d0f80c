package app

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/spf13/pflag"

	"github.com/blackwell-systems/heartwatch/internal/config"
	"github.com/blackwell-systems/heartwatch/internal/watcher"
)

// sessionOptions is the resolved configuration of one watch session.
type sessionOptions struct {
	Timeout      time.Duration
	PollInterval time.Duration
	Mode         watcher.Mode
	Action       string
	ErrorAction  string
	Shell        string
	LogLevel     slog.Level
}

// resolveOptions merges command-line flags over the config file over the
// built-in defaults. Only flags set explicitly on the command line win over
// the config file.
func resolveOptions(flags *pflag.FlagSet) (*sessionOptions, error) {
	if timeoutMin <= 0 {
		return nil, fmt.Errorf("--timeout-min must be a positive number of minutes, got %d", timeoutMin)
	}
	if actionCmd == "" {
		return nil, fmt.Errorf("--action is required")
	}

	cfgPath, err := getConfigPath()
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}

	if flags.Changed("poll-interval") {
		cfg.PollInterval = config.Duration{Duration: pollInterval}
	}
	if flags.Changed("mode") {
		cfg.Mode = modeFlag
	}
	if flags.Changed("shell") {
		cfg.Shell = shellFlag
	}
	if flags.Changed("error-action") {
		cfg.ErrorAction = errorAction
	}
	if verbose {
		cfg.LogLevel = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	mode, err := watcher.ParseMode(cfg.Mode)
	if err != nil {
		return nil, err
	}
	level, err := config.ParseLogLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	return &sessionOptions{
		Timeout:      time.Duration(timeoutMin) * time.Minute,
		PollInterval: cfg.PollInterval.Duration,
		Mode:         mode,
		Action:       actionCmd,
		ErrorAction:  cfg.ErrorAction,
		Shell:        cfg.Shell,
		LogLevel:     level,
	}, nil
}

// getConfigPath returns the config file path, using the flag value or default
func getConfigPath() (string, error) {
	if configPath != "" {
		return configPath, nil
	}

	dir, err := config.Dir()
	if err != nil {
		return "", fmt.Errorf("failed to get config directory: %w", err)
	}
	return filepath.Join(dir, config.FileName), nil
}
