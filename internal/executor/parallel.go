package executor

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/vk/databuild/internal/ctxlog"
	"github.com/vk/databuild/internal/data"
	"github.com/vk/databuild/internal/planner"
	"github.com/vk/databuild/internal/stats"
)

// Parallel executes the plan level by level: within one level every member
// runs concurrently, bounded by MaxConcurrency. A level never starts until
// every member of the previous one has resolved, and produced values fold
// into the shared dataset only after a batch joins, which serializes all
// writes.
type Parallel struct{}

// NewParallel creates the parallel strategy.
func NewParallel() *Parallel {
	return &Parallel{}
}

// Execute implements the Strategy interface.
func (p *Parallel) Execute(ctx context.Context, plan *planner.Plan, req Request, opts Options) (*Result, error) {
	if !plan.IsValid {
		return nil, ErrInvalidPlan
	}

	collector := stats.NewCollector()
	collector.SetLevelCount(len(plan.ParallelLevels))
	logger := ctxlog.FromContext(ctx).With("run_id", collector.RunID())
	logger.Debug("Parallel run started.",
		"levels", len(plan.ParallelLevels), "max_concurrency", opts.MaxConcurrency)

	ds := cloneInitial(req)
	for i, level := range plan.ParallelLevels {
		levelLogger := logger.With("level", i)
		levelLogger.Debug("Level started.", "width", len(level))

		for _, batch := range splitBatches(level, opts.MaxConcurrency) {
			values := make([]data.Data, len(batch))

			g, gctx := errgroup.WithContext(ctx)
			for j, target := range batch {
				j, target := j, target
				g.Go(func() error {
					value, err := runStep(gctx, ds, req, opts, collector, target)
					if err != nil {
						return err
					}
					values[j] = value
					return nil
				})
			}
			// The whole batch joins before any write or any further
			// scheduling; slots freed by early finishers are not refilled.
			if err := g.Wait(); err != nil {
				collector.Stop()
				levelLogger.Debug("Parallel run aborted.", "error", err)
				return nil, err
			}

			for _, value := range values {
				if value != nil {
					ds.Add(value)
				}
			}
		}
		levelLogger.Debug("Level complete.")
	}

	snap := collector.Stop()
	logger.Debug("Parallel run complete.",
		"executed", snap.Executed, "skipped", snap.Skipped,
		"max_observed_concurrency", snap.MaxConcurrency, "wall_time", snap.WallTime)
	return &Result{
		DataSet:        ds,
		ExecutionOrder: append([]string(nil), plan.ExecutionOrder...),
		Stats:          snap,
	}, nil
}

// splitBatches cuts a level into sequential batches of at most bound members.
// A non-positive bound keeps the whole level as a single batch.
func splitBatches(level []string, bound int) [][]string {
	if bound <= 0 || bound >= len(level) {
		return [][]string{level}
	}
	var batches [][]string
	for start := 0; start < len(level); start += bound {
		end := start + bound
		if end > len(level) {
			end = len(level)
		}
		batches = append(batches, level[start:end])
	}
	return batches
}
