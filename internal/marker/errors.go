package marker

import (
	"errors"
	"fmt"
)

// ErrMarkerLost matches any *LostError via errors.Is.
var ErrMarkerLost = errors.New("marker lost")

// InitializationError is returned when a marker cannot be created or touched.
type InitializationError struct {
	Path string
	Err  error
}

func (e *InitializationError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("initialize markers: %v", e.Err)
	}
	return fmt.Sprintf("initialize marker %s: %v", e.Path, e.Err)
}

func (e *InitializationError) Unwrap() error {
	return e.Err
}

// LostError is returned when a previously initialized marker has vanished.
type LostError struct {
	Path string
	Err  error
}

func (e *LostError) Error() string {
	return fmt.Sprintf("marker %s lost: %v", e.Path, e.Err)
}

func (e *LostError) Unwrap() error {
	return e.Err
}

// Is reports ErrMarkerLost as a match.
func (e *LostError) Is(target error) bool {
	return target == ErrMarkerLost
}

// ReadError wraps an unexpected failure reading a marker's timestamp.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read marker %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}
