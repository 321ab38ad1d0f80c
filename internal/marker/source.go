package marker

import (
	"errors"
	"io/fs"
	"os"
	"time"
)

// Source reports the last modification instant of a marker.
type Source interface {
	ModTime(path string) (time.Time, error)
}

// FileSource reads modification times from the local filesystem.
// Symlinks are followed, matching Touch and touch(1); a dangling link reads
// as a missing marker.
type FileSource struct{}

// ModTime returns the modification time of path.
func (FileSource) ModTime(path string) (time.Time, error) {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, err
	}
	return info.ModTime(), nil
}

// Reading is a single observation of a marker.
type Reading struct {
	Marker  Marker
	ModTime time.Time
	Age     time.Duration
}

// Stale reports whether the reading's age has reached timeout.
func (r Reading) Stale(timeout time.Duration) bool {
	return r.Age >= timeout
}

// Read observes m through src and computes its age relative to now.
// A marker that no longer exists yields a *LostError; any other failure is
// returned wrapped with the marker path.
func Read(src Source, m Marker, now time.Time) (Reading, error) {
	mt, err := src.ModTime(m.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Reading{}, &LostError{Path: m.Path, Err: err}
		}
		return Reading{}, &ReadError{Path: m.Path, Err: err}
	}
	return Reading{
		Marker:  m,
		ModTime: mt,
		Age:     now.Sub(mt),
	}, nil
}
