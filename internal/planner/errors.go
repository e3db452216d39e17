package planner

import (
	"errors"
	"strings"
)

// ErrPlanning is the sentinel all planning failures unwrap to.
var ErrPlanning = errors.New("planning failed")

// CircularDependencyError reports that the builder set contains at least one
// dependency cycle. Traces carries the human-readable paths, possibly with
// the same underlying cycle reported more than once.
type CircularDependencyError struct {
	Traces []string
}

func (e *CircularDependencyError) Error() string {
	return "circular dependency detected: " + strings.Join(e.Traces, "; ")
}

func (e *CircularDependencyError) Unwrap() error { return ErrPlanning }

// MissingBuilderError reports consumed types that no registered builder
// produces.
type MissingBuilderError struct {
	Missing []string
}

func (e *MissingBuilderError) Error() string {
	return "no builder registered for: " + strings.Join(e.Missing, ", ")
}

func (e *MissingBuilderError) Unwrap() error { return ErrPlanning }
