// Package marker manages liveness markers: plain files whose modification
// time is refreshed by some watched process.
//
// A Marker holds nothing but its path. The authoritative timestamp always
// comes from the filesystem and is read fresh on every call to Read, so
// refreshes made by other processes between polls are always observed.
package marker

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"
)

// Marker identifies a filesystem location used purely as a timestamp carrier.
type Marker struct {
	Path string
}

func (m Marker) String() string {
	return m.Path
}

// Initialize touches every path in order and returns one Marker per path.
// Duplicates are kept positionally. Existing content is left intact; only
// the timestamps are reset to now.
//
// The first failing touch aborts initialization with an *InitializationError.
// Markers touched before the failure keep their new timestamp.
func Initialize(paths []string) ([]Marker, error) {
	if len(paths) == 0 {
		return nil, &InitializationError{Err: fmt.Errorf("no markers given")}
	}

	now := time.Now()
	markers := make([]Marker, 0, len(paths))
	for _, p := range paths {
		if p == "" {
			return nil, &InitializationError{Path: p, Err: fmt.Errorf("empty marker path")}
		}
		if err := Touch(p, now); err != nil {
			return nil, &InitializationError{Path: p, Err: err}
		}
		markers = append(markers, Marker{Path: p})
	}
	return markers, nil
}

// Touch sets the access and modification times of path to t, creating an
// empty file first if nothing exists there. Existing objects, directories
// and read-only files included, only get their timestamps reset. Symlinks
// are followed.
func Touch(path string, t time.Time) error {
	err := os.Chtimes(path, t, t)
	if err == nil {
		return nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to update marker timestamp: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to create marker: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close marker: %w", err)
	}

	if err := os.Chtimes(path, t, t); err != nil {
		return fmt.Errorf("failed to update marker timestamp: %w", err)
	}
	return nil
}
