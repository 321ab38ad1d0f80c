// Package action runs the user-configured commands that respond to the end
// of a watch session.
package action

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// DefaultShell interprets action strings when no shell is configured.
const DefaultShell = "/bin/sh"

// Environment variables exported to action commands.
const (
	EnvStale = "HEARTWATCH_STALE"
	EnvError = "HEARTWATCH_ERROR"
)

// Handler reacts to the terminal outcome of a watch session.
type Handler interface {
	// Success is called once the termination predicate held. stale lists
	// the markers that satisfied it.
	Success(ctx context.Context, stale []string) error
	// Failure is called when the session failed, with the cause.
	Failure(ctx context.Context, cause error) error
}

// Noop ignores both outcomes.
type Noop struct{}

func (Noop) Success(context.Context, []string) error { return nil }
func (Noop) Failure(context.Context, error) error    { return nil }

// Shell runs action strings through a shell, like `sh -c "<action>"`.
// An empty action string is a no-op, so a missing error action never runs
// anything.
type Shell struct {
	Shell     string
	OnSuccess string
	OnFailure string
	Stdout    io.Writer
	Stderr    io.Writer
	Env       []string
}

// NewShell returns a Shell handler writing to the process's stdout/stderr.
func NewShell(shell, onSuccess, onFailure string) *Shell {
	if shell == "" {
		shell = DefaultShell
	}
	return &Shell{
		Shell:     shell,
		OnSuccess: onSuccess,
		OnFailure: onFailure,
		Stdout:    os.Stdout,
		Stderr:    os.Stderr,
	}
}

// Success runs the success action with HEARTWATCH_STALE set to the
// space-separated stale marker paths.
func (s *Shell) Success(ctx context.Context, stale []string) error {
	return s.run(ctx, s.OnSuccess, EnvStale+"="+strings.Join(stale, " "))
}

// Failure runs the error action with HEARTWATCH_ERROR set to the error text.
func (s *Shell) Failure(ctx context.Context, cause error) error {
	msg := ""
	if cause != nil {
		msg = cause.Error()
	}
	return s.run(ctx, s.OnFailure, EnvError+"="+msg)
}

func (s *Shell) run(ctx context.Context, command, extraEnv string) error {
	if strings.TrimSpace(command) == "" {
		return nil
	}

	shell := s.Shell
	if shell == "" {
		shell = DefaultShell
	}

	cmd := exec.CommandContext(ctx, shell, "-c", command)
	cmd.Stdout = s.Stdout
	cmd.Stderr = s.Stderr
	env := s.Env
	if env == nil {
		env = os.Environ()
	}
	cmd.Env = append(append([]string(nil), env...), extraEnv)

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("action %q: %w", command, err)
	}
	return nil
}
