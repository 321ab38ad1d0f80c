package app

import (
	"os"
	"testing"
	"time"

	"github.com/spf13/pflag"

	"github.com/blackwell-systems/heartwatch/internal/action"
	"github.com/blackwell-systems/heartwatch/internal/watcher"
)

// resetWatchFlags restores every root flag variable to its default and
// clears the Changed marks left by earlier parses.
func resetWatchFlags(t *testing.T) {
	t.Helper()

	reset := func() {
		timeoutMin = 0
		actionCmd = ""
		errorAction = ""
		modeFlag = "all"
		pollInterval = watcher.DefaultPollInterval
		shellFlag = action.DefaultShell
		configPath = ""
		verbose = false
		watchDaemon = false
		watchDaemonChild = false
		watchPIDFile = ""
		watchLogFile = ""
		statusTimeoutMin = 0
		stopPIDFile = ""

		RootCmd.Flags().VisitAll(func(f *pflag.Flag) { f.Changed = false })
		statusCmd.Flags().VisitAll(func(f *pflag.Flag) { f.Changed = false })
		stopCmd.Flags().VisitAll(func(f *pflag.Flag) { f.Changed = false })
	}

	reset()
	t.Cleanup(reset)
}

// isolateConfig points the config lookup at an empty directory so a real
// ~/.config/heartwatch/config.toml never leaks into tests.
func isolateConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	return dir
}

func mustDuration(t *testing.T, s string) time.Duration {
	t.Helper()
	d, err := time.ParseDuration(s)
	if err != nil {
		t.Fatalf("ParseDuration(%q): %v", s, err)
	}
	return d
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent of testing.T.Chdir from Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatalf("Chdir: %v", err)
		}
	})
}
