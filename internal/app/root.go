package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/heartwatch/internal/action"
	"github.com/blackwell-systems/heartwatch/internal/watcher"
)

var (
	timeoutMin   int
	actionCmd    string
	errorAction  string
	modeFlag     string
	pollInterval time.Duration
	shellFlag    string
	configPath   string
	verbose      bool

	watchDaemon      bool
	watchDaemonChild bool
	watchPIDFile     string
	watchLogFile     string

	// RootCmd is the root command for heartwatch. Invoked with markers, it
	// runs a single watch session.
	RootCmd = &cobra.Command{
		Use:   "heartwatch [flags] MARKER...",
		Short: "Run a command once heartbeat files stop being refreshed",
		Long: `heartwatch is a dead-man's switch driven by file timestamps.

It touches every MARKER at startup, then checks their modification times once
per poll interval. Other processes signal liveness by refreshing the markers
(for example with 'touch' or 'heartwatch touch'). Once the markers have gone
stale for --timeout-min minutes, the --action command runs.

Termination modes:
  • all (default): fire only when every marker is stale
  • any: fire as soon as one marker is stale

If a marker disappears while being watched, a one-line diagnostic is written
to stderr, the --error-action command runs (if configured), and heartwatch
exits with status 1.

A marker whose name looks like a subcommand must be given as a path,
for example ./status.

Defaults for --poll-interval, --mode, --shell, --error-action and the log level
are read from ~/.config/heartwatch/config.toml when present.`,
		Example: `  # Reboot once the worker has not checked in for 15 minutes
  heartwatch -t 15 -a "systemctl reboot" /run/worker.hb

  # Fire when either of two services goes quiet, with an error hook
  heartwatch -t 5 --mode any -a "notify-send stale" -e "notify-send lost" a.hb b.hb

  # Run the session in the background
  heartwatch --daemon -t 30 -a "shutdown -h now" /tmp/job.hb`,
		Args:          markerArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runWatch,
	}
)

func init() {
	RootCmd.Flags().IntVarP(&timeoutMin, "timeout-min", "t", 0, "minutes without a refresh before a marker is stale (required)")
	RootCmd.Flags().StringVarP(&actionCmd, "action", "a", "", "shell command to run once the markers are stale (required)")
	RootCmd.Flags().StringVarP(&errorAction, "error-action", "e", "", "shell command to run if watching fails (default: none)")
	RootCmd.Flags().StringVar(&modeFlag, "mode", "all", `termination mode: "all" or "any" markers stale`)
	RootCmd.Flags().DurationVar(&pollInterval, "poll-interval", watcher.DefaultPollInterval, "time between marker checks")
	RootCmd.Flags().StringVar(&shellFlag, "shell", action.DefaultShell, "shell used to run actions")
	RootCmd.Flags().StringVar(&configPath, "config", "", "config file (default: ~/.config/heartwatch/config.toml)")
	RootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log session progress to stderr")

	RootCmd.Flags().BoolVar(&watchDaemon, "daemon", false, "run the session as a background daemon")
	RootCmd.Flags().BoolVar(&watchDaemonChild, "daemon-child", false, "internal flag for daemon child process")
	RootCmd.Flags().StringVar(&watchPIDFile, "pid-file", "", "PID file path (default: ~/.heartwatch/watch.pid)")
	RootCmd.Flags().StringVar(&watchLogFile, "log-file", "", "log file path (default: ~/.heartwatch/watch.log)")

	// Hide the internal daemon-child flag from help
	RootCmd.Flags().MarkHidden("daemon-child")

	// Enable cobra's built-in suggestion feature for unknown subcommands
	RootCmd.SuggestionsMinimumDistance = 2

	RootCmd.AddCommand(statusCmd)
	RootCmd.AddCommand(touchCmd)
	RootCmd.AddCommand(stopCmd)
}

// Execute runs the root command
func Execute() error {
	return RootCmd.Execute()
}

// ExitError carries a process exit status for failures whose diagnostic has
// already been written to stderr.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// markerArgs requires at least one marker and rejects a bare first argument
// that looks like a mistyped subcommand, unless a file by that name exists.
func markerArgs(cmd *cobra.Command, args []string) error {
	if err := cobra.MinimumNArgs(1)(cmd, args); err != nil {
		return err
	}

	name := args[0]
	if strings.ContainsRune(name, filepath.Separator) {
		return nil
	}
	if _, err := os.Lstat(name); err == nil {
		return nil
	}
	if suggestions := cmd.SuggestionsFor(name); len(suggestions) > 0 {
		return fmt.Errorf("unknown command %q for %q\n\nDid you mean this?\n\t%s\n\nTo watch a marker named %q, pass it as ./%s",
			name, cmd.CommandPath(), strings.Join(suggestions, "\n\t"), name, name)
	}
	return nil
}

func runWatch(cmd *cobra.Command, args []string) error {
	opts, err := resolveOptions(cmd.Flags())
	if err != nil {
		return err
	}

	if watchDaemon || watchDaemonChild {
		if err := resolveDaemonPaths(); err != nil {
			return err
		}
	}

	if watchDaemon {
		return startWatchDaemon(os.Args[1:])
	}

	logger := newLogger(cmd.ErrOrStderr(), opts.LogLevel).With("session", uuid.NewString())

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if watchDaemonChild {
		defer func() {
			if err := watcher.RemovePIDFile(watchPIDFile); err != nil {
				logger.Warn("failed to remove PID file", "path", watchPIDFile, "err", err)
			}
		}()
	}

	handler := action.NewShell(opts.Shell, opts.Action, opts.ErrorAction)
	handler.Stdout = cmd.OutOrStdout()
	handler.Stderr = cmd.ErrOrStderr()

	err = runSession(ctx, args, opts, handler, logger, cmd.ErrOrStderr())
	if errors.Is(err, context.Canceled) {
		return fmt.Errorf("watch interrupted: %w", err)
	}
	return err
}

func resolveDaemonPaths() error {
	if watchPIDFile == "" {
		defaultPID, err := getDefaultPIDFile()
		if err != nil {
			return fmt.Errorf("failed to get default PID file path: %w", err)
		}
		watchPIDFile = defaultPID
	}

	if watchLogFile == "" {
		defaultLog, err := getDefaultLogFile()
		if err != nil {
			return fmt.Errorf("failed to get default log file path: %w", err)
		}
		watchLogFile = defaultLog
	}
	return nil
}
