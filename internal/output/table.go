// Package output provides terminal output utilities for heartwatch.
//
// This package includes:
//   - Marker status tables for the status command
//   - A spinner for daemon start and stop
//
// Color is only emitted when stdout is a terminal and NO_COLOR is unset.
package output

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"
)

// ANSI color codes for marker status display
const (
	colorReset  = "\033[0m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorRed    = "\033[31m"
)

// IsColorEnabled returns true if ANSI color codes should be emitted.
// It checks that os.Stdout is a TTY and that the NO_COLOR env var is not set.
func IsColorEnabled() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(os.Stdout.Fd())
}

// colorize wraps text in the given ANSI color code if color is enabled,
// otherwise returns the plain text.
func colorize(color, text string) string {
	if IsColorEnabled() {
		return color + text + colorReset
	}
	return text
}

// MarkerStatus is one row of the status table. Err is set when the marker
// could not be read.
type MarkerStatus struct {
	Path    string
	ModTime time.Time
	Age     time.Duration
	Err     error
}

// Status labels a row as "fresh", "stale", "missing" or "error".
func (m MarkerStatus) Status(timeout time.Duration) string {
	switch {
	case m.Err != nil && errors.Is(m.Err, fs.ErrNotExist):
		return "missing"
	case m.Err != nil:
		return "error"
	case m.Age >= timeout:
		return "stale"
	default:
		return "fresh"
	}
}

// RenderMarkerTable renders the markers in the given order with their last
// refresh, age and status against timeout.
func RenderMarkerTable(rows []MarkerStatus, timeout time.Duration, now time.Time) string {
	if len(rows) == 0 {
		return "No markers.\n"
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%-40s %-18s %-10s %s\n", "Marker", "Last Seen", "Age", "Status"))
	sb.WriteString(strings.Repeat("─", 78))
	sb.WriteString("\n")

	stale := 0
	for _, row := range rows {
		status := row.Status(timeout)
		lastSeen, age := "-", "-"
		if row.Err == nil {
			lastSeen = humanize.RelTime(row.ModTime, now, "ago", "from now")
			age = formatAge(row.Age)
		}
		if status != "fresh" {
			stale++
		}

		sb.WriteString(fmt.Sprintf("%-40s %-18s %-10s %s\n",
			truncate(row.Path, 40),
			truncate(lastSeen, 18),
			age,
			colorize(statusColor(status), status)))
	}

	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("%d of %d markers not fresh (timeout %s)\n",
		stale, len(rows), formatAge(timeout)))

	return sb.String()
}

func statusColor(status string) string {
	switch status {
	case "fresh":
		return colorGreen
	case "stale":
		return colorYellow
	default:
		return colorRed
	}
}

// formatAge renders d rounded to the second, e.g. "4m10s".
func formatAge(d time.Duration) string {
	if d < 0 {
		return "-" + d.Abs().Round(time.Second).String()
	}
	return d.Round(time.Second).String()
}

// truncate truncates a string to maxLen characters, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return "..." + s[len(s)-(maxLen-3):]
}
