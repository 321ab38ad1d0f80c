package watcher

import (
	"fmt"
	"strings"
)

// Mode selects the termination predicate of a watch session.
type Mode int

const (
	// AllStale terminates once every marker has reached the timeout.
	AllStale Mode = iota
	// AnyStale terminates as soon as one marker reaches the timeout.
	AnyStale
)

func (m Mode) String() string {
	switch m {
	case AllStale:
		return "all"
	case AnyStale:
		return "any"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode parses "all" or "any" (case-insensitive).
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "all", "all_stale", "all-stale":
		return AllStale, nil
	case "any", "any_stale", "any-stale", "first":
		return AnyStale, nil
	default:
		return AllStale, fmt.Errorf("invalid mode %q (expected \"all\" or \"any\")", s)
	}
}

// State is the position of a session in its lifecycle:
//
//	Initializing -> Polling -> {StaleAll, StaleOne, Lost, Failed}
type State int

const (
	Initializing State = iota
	Polling
	StaleAll
	StaleOne
	Lost
	Failed
)

var stateNames = map[State]string{
	Initializing: "initializing",
	Polling:      "polling",
	StaleAll:     "stale-all",
	StaleOne:     "stale-one",
	Lost:         "lost",
	Failed:       "failed",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Terminal reports whether no further polling happens from s.
func (s State) Terminal() bool {
	return s >= StaleAll
}

// Succeeded reports whether s is a staleness outcome rather than a failure.
func (s State) Succeeded() bool {
	return s == StaleAll || s == StaleOne
}
