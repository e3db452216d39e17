package executor

import (
	"context"

	"github.com/vk/databuild/internal/ctxlog"
	"github.com/vk/databuild/internal/data"
	"github.com/vk/databuild/internal/planner"
	"github.com/vk/databuild/internal/stats"
)

// Sequential executes the plan's flat order one builder at a time, folding
// each produced value into the working dataset before the next step. Strict
// linear ordering, zero concurrency.
type Sequential struct{}

// NewSequential creates the sequential strategy.
func NewSequential() *Sequential {
	return &Sequential{}
}

// Execute implements the Strategy interface.
func (s *Sequential) Execute(ctx context.Context, plan *planner.Plan, req Request, opts Options) (*Result, error) {
	if !plan.IsValid {
		return nil, ErrInvalidPlan
	}

	collector := stats.NewCollector()
	logger := ctxlog.FromContext(ctx).With("run_id", collector.RunID())
	logger.Debug("Sequential run started.", "steps", len(plan.ExecutionOrder))

	ds := cloneInitial(req)
	for _, target := range plan.ExecutionOrder {
		value, err := runStep(ctx, ds, req, opts, collector, target)
		if err != nil {
			collector.Stop()
			logger.Debug("Sequential run aborted.", "type", target, "error", err)
			return nil, err
		}
		if value != nil {
			ds.Add(value)
		}
	}

	snap := collector.Stop()
	logger.Debug("Sequential run complete.",
		"executed", snap.Executed, "skipped", snap.Skipped, "wall_time", snap.WallTime)
	return &Result{
		DataSet:        ds,
		ExecutionOrder: append([]string(nil), plan.ExecutionOrder...),
		Stats:          snap,
	}, nil
}

// cloneInitial clones the caller's seed dataset so the run never mutates
// caller-owned data.
func cloneInitial(req Request) *data.DataSet {
	if req.Initial == nil {
		return data.NewDataSet()
	}
	return req.Initial.Clone()
}
