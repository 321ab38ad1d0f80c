package app

import (
	"reflect"
	"testing"
)

func TestDaemonChildArgs(t *testing.T) {
	tests := []struct {
		name string
		argv []string
		want []string
	}{
		{
			name: "strips daemon flag",
			argv: []string{"--daemon", "-t", "5", "-a", "true", "hb"},
			want: []string{"-t", "5", "-a", "true", "hb"},
		},
		{
			name: "strips daemon flag with value",
			argv: []string{"-t", "5", "--daemon=true", "-a", "true", "hb"},
			want: []string{"-t", "5", "-a", "true", "hb"},
		},
		{
			name: "keeps arguments after double dash",
			argv: []string{"--daemon", "-t", "5", "-a", "true", "--", "--daemon"},
			want: []string{"-t", "5", "-a", "true", "--", "--daemon"},
		},
		{
			name: "keeps daemon-child and pid-file",
			argv: []string{"--pid-file", "/tmp/w.pid", "--daemon", "hb"},
			want: []string{"--pid-file", "/tmp/w.pid", "hb"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := daemonChildArgs(tt.argv)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("daemonChildArgs(%v) = %v, want %v", tt.argv, got, tt.want)
			}
		})
	}
}

func TestContainsFlag(t *testing.T) {
	tests := []struct {
		args []string
		want bool
	}{
		{args: []string{"--pid-file", "/tmp/x"}, want: true},
		{args: []string{"--pid-file=/tmp/x"}, want: true},
		{args: []string{"--pid-filex"}, want: false},
		{args: nil, want: false},
	}

	for _, tt := range tests {
		if got := containsFlag(tt.args, "--pid-file"); got != tt.want {
			t.Errorf("containsFlag(%v) = %v, want %v", tt.args, got, tt.want)
		}
	}
}

func TestWatchCommandRequiresMarkers(t *testing.T) {
	resetWatchFlags(t)
	isolateConfig(t)

	RootCmd.SetArgs([]string{"-t", "1", "-a", "true"})
	defer RootCmd.SetArgs(nil)

	if err := RootCmd.Execute(); err == nil {
		t.Error("Execute() without markers expected error, got nil")
	}
}
