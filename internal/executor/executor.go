// Package executor runs validated plans against a dataset, sequentially or
// with bounded level-wise concurrency.
package executor

import (
	"context"
	"time"

	"github.com/vk/databuild/internal/builder"
	"github.com/vk/databuild/internal/data"
	"github.com/vk/databuild/internal/planner"
	"github.com/vk/databuild/internal/stats"
)

// Lookup resolves a builder by the type it produces. *registry.Registry
// satisfies it.
type Lookup interface {
	Lookup(provides string) (builder.DataBuilder, bool)
}

// Request carries the run inputs: the caller's initial dataset (cloned, never
// mutated in place) and the builder lookup backing the plan.
type Request struct {
	Initial  *data.DataSet
	Builders Lookup
}

// Options tune one run. The zero value means no timeout, full-level
// concurrency, and fail-fast error policy.
type Options struct {
	// Timeout bounds each individual builder invocation. Zero disables it.
	Timeout time.Duration
	// MaxConcurrency caps how many builders of one level run at once
	// (parallel strategy only). Zero or negative means the full level width.
	MaxConcurrency int
	// ContinueOnError downgrades an individual builder failure (including a
	// timeout) to a logged omission instead of aborting the run.
	ContinueOnError bool
}

// Result is what a completed run returns.
type Result struct {
	// DataSet holds the seed values plus everything produced during the run.
	DataSet *data.DataSet
	// ExecutionOrder echoes the plan's flat order.
	ExecutionOrder []string
	// Stats is the frozen instrumentation snapshot for the run.
	Stats stats.RunStats
}

// Strategy executes a validated plan.
type Strategy interface {
	Execute(ctx context.Context, plan *planner.Plan, req Request, opts Options) (*Result, error)
}
