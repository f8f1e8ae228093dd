package search

import (
	"fmt"
	"time"

	"github.com/matzehuels/gridshift/pkg/grid"
)

// Status is the outcome of a search.
type Status int

const (
	// StatusFound means an optimal plan was found.
	StatusFound Status = iota
	// StatusExhausted means the goal is unreachable from the initial state.
	StatusExhausted
	// StatusBudgetExceeded means the search stopped early; reachability is
	// unknown.
	StatusBudgetExceeded
)

var statusNames = [...]string{
	StatusFound:          "found",
	StatusExhausted:      "exhausted",
	StatusBudgetExceeded: "budget_exceeded",
}

func (s Status) String() string {
	if s >= 0 && int(s) < len(statusNames) {
		return statusNames[s]
	}
	return fmt.Sprintf("status(%d)", int(s))
}

// MarshalText encodes the status by name.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a status name.
func (s *Status) UnmarshalText(b []byte) error {
	for i, name := range statusNames {
		if name == string(b) {
			*s = Status(i)
			return nil
		}
	}
	return fmt.Errorf("unknown search status %q", b)
}

// Result describes a finished search.
type Result struct {
	Status Status

	// Path lists the states from the initial state to the goal, inclusive.
	// It is empty unless Status is StatusFound.
	Path []grid.State
	// Moves lists the move taken between consecutive states of Path.
	Moves []grid.Move
	// Length is the number of moves in the plan.
	Length int

	Expanded  int // states taken off the frontier and expanded
	Generated int // successor edges examined
	Duration  time.Duration
}

// Found reports whether a plan was found.
func (r *Result) Found() bool { return r.Status == StatusFound }
