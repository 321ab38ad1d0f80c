package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/heartwatch/internal/output"
	"github.com/blackwell-systems/heartwatch/internal/watcher"
)

var (
	stopPIDFile string

	stopCmd = &cobra.Command{
		Use:   "stop",
		Short: "Stop a background watch session",
		Long: `Send SIGTERM to the watch session started with --daemon.

Neither the action nor the error action runs for a stopped session.`,
		Example: `  heartwatch stop
  heartwatch stop --pid-file /tmp/watch.pid`,
		Args: cobra.NoArgs,
		RunE: runStop,
	}
)

func init() {
	stopCmd.Flags().StringVar(&stopPIDFile, "pid-file", "", "PID file path (default: ~/.heartwatch/watch.pid)")
}

func runStop(cmd *cobra.Command, args []string) error {
	if stopPIDFile == "" {
		defaultPID, err := getDefaultPIDFile()
		if err != nil {
			return fmt.Errorf("failed to get default PID file path: %w", err)
		}
		stopPIDFile = defaultPID
	}

	running, err := watcher.IsDaemonRunning(stopPIDFile)
	if err != nil {
		return fmt.Errorf("failed to check daemon status: %w", err)
	}
	if !running {
		fmt.Fprintln(cmd.OutOrStdout(), "Daemon is not running")
		return nil
	}

	spinner := output.NewSpinner("Stopping daemon...")
	spinner.SetWriter(cmd.OutOrStdout())
	spinner.Start()
	if err := watcher.StopDaemon(stopPIDFile); err != nil {
		spinner.Stop()
		return fmt.Errorf("failed to stop daemon: %w", err)
	}
	spinner.StopWithMessage("✓ Daemon stopped")

	return nil
}
