package app

import (
	"fmt"
	"strings"

	"github.com/blackwell-systems/heartwatch/internal/output"
	"github.com/blackwell-systems/heartwatch/internal/watcher"
)

// daemonChildArgs strips the --daemon flag from argv so the child runs the
// session in the foreground of its own process.
func daemonChildArgs(argv []string) []string {
	args := make([]string, 0, len(argv))
	for i, a := range argv {
		if a == "--" {
			return append(args, argv[i:]...)
		}
		if a == "--daemon" || strings.HasPrefix(a, "--daemon=") {
			continue
		}
		args = append(args, a)
	}
	return args
}

func startWatchDaemon(argv []string) error {
	running, err := watcher.IsDaemonRunning(watchPIDFile)
	if err != nil {
		return fmt.Errorf("failed to check daemon status: %w", err)
	}
	if running {
		return fmt.Errorf("daemon already running (PID file: %s)", watchPIDFile)
	}

	args := daemonChildArgs(argv)
	if !containsFlag(args, "--pid-file") {
		// The child must clean up the same PID file the parent wrote.
		args = append([]string{"--pid-file", watchPIDFile}, args...)
	}

	spinner := output.NewSpinner("Starting daemon...")
	spinner.Start()
	pid, err := watcher.StartDaemon(watchPIDFile, watchLogFile, args)
	if err != nil {
		spinner.Stop()
		return fmt.Errorf("failed to start daemon: %w", err)
	}
	spinner.StopWithMessage("✓ Daemon started")

	fmt.Printf("\nHeartbeat watch running in the background (PID %d)\n", pid)
	fmt.Printf("  PID file: %s\n", watchPIDFile)
	fmt.Printf("  Log file: %s\n", watchLogFile)
	fmt.Printf("\nTo stop: heartwatch stop\n")

	return nil
}

func containsFlag(args []string, name string) bool {
	for _, a := range args {
		if a == name || strings.HasPrefix(a, name+"=") {
			return true
		}
	}
	return false
}
