package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRootCommand(t *testing.T) {
	// Test that root command is properly configured
	if !strings.HasPrefix(RootCmd.Use, "heartwatch") {
		t.Errorf("expected Use to start with 'heartwatch', got '%s'", RootCmd.Use)
	}

	if RootCmd.Short == "" {
		t.Error("expected Short description to be set")
	}

	if RootCmd.Long == "" {
		t.Error("expected Long description to be set")
	}

	if RootCmd.RunE == nil {
		t.Error("expected RunE to be set")
	}
}

func TestRootCommandHasSubcommands(t *testing.T) {
	expectedCommands := []string{"status", "touch", "stop"}
	foundCommands := make(map[string]bool)

	for _, cmd := range RootCmd.Commands() {
		foundCommands[cmd.Name()] = true
	}

	for _, expected := range expectedCommands {
		if !foundCommands[expected] {
			t.Errorf("expected command '%s' to be registered", expected)
		}
	}
}

func TestRootCommandFlags(t *testing.T) {
	tests := []struct {
		name      string
		shorthand string
		hidden    bool
	}{
		{name: "timeout-min", shorthand: "t"},
		{name: "action", shorthand: "a"},
		{name: "error-action", shorthand: "e"},
		{name: "mode"},
		{name: "poll-interval"},
		{name: "shell"},
		{name: "config"},
		{name: "verbose", shorthand: "v"},
		{name: "daemon"},
		{name: "daemon-child", hidden: true},
		{name: "pid-file"},
		{name: "log-file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag := RootCmd.Flags().Lookup(tt.name)
			if flag == nil {
				t.Fatalf("expected flag '%s' to be registered", tt.name)
			}
			if flag.Shorthand != tt.shorthand {
				t.Errorf("flag '%s' shorthand = %q, want %q", tt.name, flag.Shorthand, tt.shorthand)
			}
			if flag.Hidden != tt.hidden {
				t.Errorf("flag '%s' hidden = %v, want %v", tt.name, flag.Hidden, tt.hidden)
			}
			if flag.Usage == "" {
				t.Errorf("expected flag '%s' to have usage text", tt.name)
			}
		})
	}
}

func TestGetDefaultPIDFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path, err := getDefaultPIDFile()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if want := filepath.Join(home, ".heartwatch", "watch.pid"); path != want {
		t.Errorf("getDefaultPIDFile() = %q, want %q", path, want)
	}

	// Check that directory exists
	if _, err := os.Stat(filepath.Dir(path)); err != nil {
		t.Errorf("expected directory '%s' to exist: %v", filepath.Dir(path), err)
	}
}

func TestGetDefaultLogFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path, err := getDefaultLogFile()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if want := filepath.Join(home, ".heartwatch", "watch.log"); path != want {
		t.Errorf("getDefaultLogFile() = %q, want %q", path, want)
	}
}

func TestGetConfigPath(t *testing.T) {
	resetWatchFlags(t)

	base := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", base)

	path, err := getConfigPath()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := filepath.Join(base, "heartwatch", "config.toml"); path != want {
		t.Errorf("getConfigPath() = %q, want %q", path, want)
	}

	configPath = "/etc/heartwatch.toml"
	path, err = getConfigPath()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if path != "/etc/heartwatch.toml" {
		t.Errorf("getConfigPath() = %q, want flag value", path)
	}
}

func TestExitError(t *testing.T) {
	inner := os.ErrNotExist
	err := &ExitError{Code: 1, Err: inner}

	if err.Error() != inner.Error() {
		t.Errorf("Error() = %q, want %q", err.Error(), inner.Error())
	}
	if err.Unwrap() != inner {
		t.Error("Unwrap() did not return the wrapped error")
	}
}

func TestMistypedSubcommandIsNotAMarker(t *testing.T) {
	resetWatchFlags(t)
	isolateConfig(t)
	chdir(t, t.TempDir())

	RootCmd.SetArgs([]string{"-t", "1", "-a", "true", "stauts"})
	defer RootCmd.SetArgs(nil)

	err := RootCmd.Execute()
	if err == nil {
		t.Fatal("Execute() expected error for mistyped subcommand, got nil")
	}
	if !strings.Contains(err.Error(), "Did you mean this?") || !strings.Contains(err.Error(), "status") {
		t.Errorf("error = %q, want a suggestion for status", err)
	}
	if _, err := os.Stat("stauts"); !os.IsNotExist(err) {
		t.Error("a marker file was created for the mistyped subcommand")
	}
}

func TestMarkerArgs(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	if err := os.WriteFile("stpo", nil, 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	tests := []struct {
		name    string
		args    []string
		wantErr bool
	}{
		{name: "no markers", args: nil, wantErr: true},
		{name: "near subcommand", args: []string{"tuoch"}, wantErr: true},
		{name: "explicit path", args: []string{"./tuoch"}},
		{name: "existing file near subcommand", args: []string{"stpo"}},
		{name: "ordinary marker", args: []string{"worker.hb"}},
		{name: "absolute path", args: []string{filepath.Join(dir, "statsu")}},
		{name: "only first argument checked", args: []string{"worker.hb", "tuoch"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := markerArgs(RootCmd, tt.args)
			if (err != nil) != tt.wantErr {
				t.Errorf("markerArgs(%v) error = %v, wantErr %v", tt.args, err, tt.wantErr)
			}
		})
	}
}
