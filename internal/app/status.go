package app

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/heartwatch/internal/marker"
	"github.com/blackwell-systems/heartwatch/internal/output"
)

var (
	statusTimeoutMin int

	statusCmd = &cobra.Command{
		Use:   "status MARKER...",
		Short: "Show how long ago each marker was refreshed",
		Long: `Print the last refresh time, age and staleness of each marker.

The status command only reads marker timestamps. It never creates or touches
markers, so it is safe to run next to an active watch session.`,
		Example: `  heartwatch status -t 15 /run/worker.hb /run/db.hb`,
		Args:    cobra.MinimumNArgs(1),
		RunE:    runStatus,
	}
)

func init() {
	statusCmd.Flags().IntVarP(&statusTimeoutMin, "timeout-min", "t", 0, "staleness threshold in minutes (required)")
}

func runStatus(cmd *cobra.Command, args []string) error {
	if statusTimeoutMin <= 0 {
		return fmt.Errorf("--timeout-min must be a positive number of minutes, got %d", statusTimeoutMin)
	}
	timeout := time.Duration(statusTimeoutMin) * time.Minute

	now := time.Now()
	rows := collectStatus(marker.FileSource{}, args, now)
	fmt.Fprint(cmd.OutOrStdout(), output.RenderMarkerTable(rows, timeout, now))
	return nil
}

// collectStatus reads every marker, keeping read failures as rows.
func collectStatus(src marker.Source, paths []string, now time.Time) []output.MarkerStatus {
	rows := make([]output.MarkerStatus, 0, len(paths))
	for _, p := range paths {
		r, err := marker.Read(src, marker.Marker{Path: p}, now)
		if err != nil {
			rows = append(rows, output.MarkerStatus{Path: p, Err: err})
			continue
		}
		rows = append(rows, output.MarkerStatus{
			Path:    p,
			ModTime: r.ModTime,
			Age:     r.Age,
		})
	}
	return rows
}
