package executor

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidPlan is returned when a strategy is handed a plan whose IsValid
// flag is false. Strategies never attempt a partial run.
var ErrInvalidPlan = errors.New("cannot execute an invalid plan")

// BuilderExecutionError wraps a builder's failure with the failing builder's
// name and the type it was producing, so a run's outcome is diagnosable
// without re-execution.
type BuilderExecutionError struct {
	Builder string
	Target  string
	Cause   error
}

func (e *BuilderExecutionError) Error() string {
	return fmt.Sprintf("builder %q producing %q failed: %v", e.Builder, e.Target, e.Cause)
}

func (e *BuilderExecutionError) Unwrap() error { return e.Cause }

// TimeoutError reports a builder that exceeded its configured bound. The
// waiter abandons the call; the builder's goroutine keeps running with a
// cancelled context and its eventual result is discarded.
type TimeoutError struct {
	Builder string
	Target  string
	Limit   time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("builder %q producing %q timed out after %s", e.Builder, e.Target, e.Limit)
}
