package watcher

import (
	"context"
	"errors"
	"io/fs"
	"time"
)

var errSleepLimit = errors.New("fake clock: sleep limit reached")

// fakeClock advances virtual time on every Sleep. afterSleep runs once the
// clock has moved, letting tests refresh or delete markers between polls.
// Sleeping past deadline (when set) returns errSleepLimit.
type fakeClock struct {
	now        time.Time
	deadline   time.Time
	sleeps     int
	afterSleep func(now time.Time)
	// nowBeforeFirstSleep counts Now calls made before the first Sleep.
	nowBeforeFirstSleep int
}

func newFakeClock(start time.Time) *fakeClock {
	return &fakeClock{now: start}
}

func (c *fakeClock) Now() time.Time {
	if c.sleeps == 0 {
		c.nowBeforeFirstSleep++
	}
	return c.now
}

func (c *fakeClock) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	next := c.now.Add(d)
	if !c.deadline.IsZero() && next.After(c.deadline) {
		return errSleepLimit
	}
	c.now = next
	c.sleeps++
	if c.afterSleep != nil {
		c.afterSleep(c.now)
	}
	return nil
}

// fakeSource serves modification times from a map. Missing entries behave
// like deleted files.
type fakeSource struct {
	mtimes map[string]time.Time
	err    error
}

func newFakeSource() *fakeSource {
	return &fakeSource{mtimes: make(map[string]time.Time)}
}

func (s *fakeSource) touch(path string, t time.Time) {
	s.mtimes[path] = t
}

func (s *fakeSource) remove(path string) {
	delete(s.mtimes, path)
}

func (s *fakeSource) ModTime(path string) (time.Time, error) {
	if s.err != nil {
		return time.Time{}, s.err
	}
	t, ok := s.mtimes[path]
	if !ok {
		return time.Time{}, &fs.PathError{Op: "stat", Path: path, Err: fs.ErrNotExist}
	}
	return t, nil
}
