package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/blackwell-systems/heartwatch/internal/action"
	"github.com/blackwell-systems/heartwatch/internal/marker"
	"github.com/blackwell-systems/heartwatch/internal/watcher"
)

// failureExitCode is the process status after the failure path ran.
const failureExitCode = 1

// runSession initializes the markers, blocks in the watch loop and
// dispatches the outcome to h.
//
// Initialization failures are returned as-is without running the error
// action: the session never started. Watch failures write one line to diag,
// run the error action and come back as an *ExitError. A failing action is
// logged but does not change the outcome.
func runSession(ctx context.Context, paths []string, opts *sessionOptions, h action.Handler, logger *slog.Logger, diag io.Writer) error {
	logger.Info("watching heartbeats",
		"markers", paths,
		"timeout", opts.Timeout,
		"poll_interval", opts.PollInterval,
		"mode", opts.Mode.String(),
		"action", opts.Action,
		"error_action", opts.ErrorAction)

	markers, err := marker.Initialize(paths)
	if err != nil {
		return err
	}

	w, err := watcher.New(markers, watcher.Options{
		Timeout:      opts.Timeout,
		PollInterval: opts.PollInterval,
		Mode:         opts.Mode,
		Logger:       logger,
	})
	if err != nil {
		return err
	}

	res, err := w.Watch(ctx)
	if err != nil {
		if ctx.Err() != nil {
			logger.Warn("watch interrupted", "err", err)
			return err
		}

		fmt.Fprintf(diag, "heartwatch: %v\n", err)
		if aerr := h.Failure(ctx, err); aerr != nil {
			logger.Warn("error action failed", "err", aerr)
		}
		return &ExitError{Code: failureExitCode, Err: err}
	}

	logger.Info("markers stale",
		"state", res.State.String(),
		"stale", res.StalePaths(),
		"polls", res.Polls)

	if aerr := h.Success(ctx, res.StalePaths()); aerr != nil {
		logger.Warn("action failed", "err", aerr)
	}
	return nil
}
