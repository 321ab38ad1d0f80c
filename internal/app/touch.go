package app

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/heartwatch/internal/marker"
)

var touchCmd = &cobra.Command{
	Use:   "touch MARKER...",
	Short: "Refresh markers (send a heartbeat)",
	Long: `Create each marker if needed and set its modification time to now.

Run this from the watched process, a cron job or a health check to signal
that the process is still alive. Plain 'touch' works just as well.`,
	Example: `  # Heartbeat from a shell loop
  while do_work; do heartwatch touch /run/worker.hb; done`,
	Args: cobra.MinimumNArgs(1),
	RunE: runTouch,
}

func runTouch(cmd *cobra.Command, args []string) error {
	now := time.Now()
	for _, p := range args {
		if err := marker.Touch(p, now); err != nil {
			return fmt.Errorf("failed to touch %s: %w", p, err)
		}
	}
	return nil
}
