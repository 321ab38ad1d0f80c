package watcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/blackwell-systems/heartwatch/internal/marker"
)

// DefaultPollInterval is the cadence between polls when none is configured.
const DefaultPollInterval = 60 * time.Second

// Options configures a Watcher. Zero values for Clock, Source and Logger are
// replaced with the real clock, the local filesystem and a discarding logger.
type Options struct {
	// Timeout is the staleness threshold applied to every marker.
	Timeout time.Duration
	// PollInterval is the sleep between polls. Defaults to DefaultPollInterval.
	PollInterval time.Duration
	Mode         Mode
	Clock        Clock
	Source       marker.Source
	Logger       *slog.Logger
}

// Result describes how a session ended.
type Result struct {
	State State
	// Stale holds the readings that satisfied the predicate: every marker for
	// AllStale, the first stale marker for AnyStale.
	Stale      []marker.Reading
	Polls      int
	FinishedAt time.Time
}

// StalePaths returns the paths of the stale markers.
func (r *Result) StalePaths() []string {
	paths := make([]string, 0, len(r.Stale))
	for _, rd := range r.Stale {
		paths = append(paths, rd.Marker.Path)
	}
	return paths
}

// Watcher polls a fixed set of markers until the session's termination
// predicate holds. The marker set is never modified after New.
type Watcher struct {
	markers  []marker.Marker
	timeout  time.Duration
	interval time.Duration
	mode     Mode
	clock    Clock
	source   marker.Source
	logger   *slog.Logger

	state State
	polls int
}

// New creates a Watcher for markers.
func New(markers []marker.Marker, opts Options) (*Watcher, error) {
	if len(markers) == 0 {
		return nil, fmt.Errorf("at least one marker is required")
	}
	if opts.Timeout <= 0 {
		return nil, fmt.Errorf("timeout must be positive, got %v", opts.Timeout)
	}
	if opts.PollInterval < 0 {
		return nil, fmt.Errorf("poll interval must be positive, got %v", opts.PollInterval)
	}
	if opts.Mode != AllStale && opts.Mode != AnyStale {
		return nil, fmt.Errorf("unknown mode %v", opts.Mode)
	}

	w := &Watcher{
		markers:  append([]marker.Marker(nil), markers...),
		timeout:  opts.Timeout,
		interval: opts.PollInterval,
		mode:     opts.Mode,
		clock:    opts.Clock,
		source:   opts.Source,
		logger:   opts.Logger,
		state:    Initializing,
	}
	if w.interval == 0 {
		w.interval = DefaultPollInterval
	}
	if w.clock == nil {
		w.clock = realClock{}
	}
	if w.source == nil {
		w.source = marker.FileSource{}
	}
	if w.logger == nil {
		w.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return w, nil
}

// State returns the current lifecycle state.
func (w *Watcher) State() State {
	return w.state
}

// Watch blocks until the termination predicate holds, a marker read fails,
// or ctx is done. The first poll happens one interval after Watch is called,
// so freshly touched markers are never checked at age zero.
//
// A vanished marker ends the session with an error matching
// marker.ErrMarkerLost and the watcher in the Lost state.
func (w *Watcher) Watch(ctx context.Context) (*Result, error) {
	if w.state.Terminal() {
		return nil, fmt.Errorf("watch session already finished (%s)", w.state)
	}
	w.state = Polling

	w.logger.Debug("watch started",
		"markers", len(w.markers),
		"timeout", w.timeout,
		"poll_interval", w.interval,
		"mode", w.mode.String())

	for {
		if err := w.clock.Sleep(ctx, w.interval); err != nil {
			return nil, err
		}

		res, err := w.Poll()
		if err != nil {
			return nil, err
		}
		if res.State.Terminal() {
			w.logger.Debug("watch finished", "state", res.State.String(), "polls", res.Polls)
			return res, nil
		}
	}
}

// Poll performs a single tick: every marker is read fresh and the predicate
// is evaluated from scratch. When any read fails the predicate is not
// evaluated and the error is returned.
func (w *Watcher) Poll() (*Result, error) {
	if w.state.Terminal() {
		return nil, fmt.Errorf("watch session already finished (%s)", w.state)
	}

	now := w.clock.Now()
	w.polls++

	readings := make([]marker.Reading, 0, len(w.markers))
	for _, m := range w.markers {
		r, err := marker.Read(w.source, m, now)
		if err != nil {
			if errors.Is(err, marker.ErrMarkerLost) {
				w.state = Lost
			} else {
				w.state = Failed
			}
			w.logger.Debug("poll failed", "marker", m.Path, "err", err)
			return nil, err
		}
		if r.Age < 0 {
			w.logger.Debug("marker timestamp is in the future", "marker", m.Path, "age", r.Age)
		}
		readings = append(readings, r)
	}

	stale := make([]marker.Reading, 0, len(readings))
	for _, r := range readings {
		if r.Stale(w.timeout) {
			stale = append(stale, r)
		}
	}

	w.logger.Debug("poll", "n", w.polls, "stale", len(stale), "markers", len(readings))

	switch {
	case w.mode == AllStale && len(stale) == len(readings):
		w.state = StaleAll
	case w.mode == AnyStale && len(stale) > 0:
		w.state = StaleOne
		stale = stale[:1]
	default:
		w.state = Polling
		stale = nil
	}

	return &Result{
		State:      w.state,
		Stale:      stale,
		Polls:      w.polls,
		FinishedAt: now,
	}, nil
}
