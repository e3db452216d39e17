package executor

import (
	"context"
	"fmt"
	"time"

	"github.com/vk/databuild/internal/builder"
	"github.com/vk/databuild/internal/ctxlog"
	"github.com/vk/databuild/internal/data"
	"github.com/vk/databuild/internal/stats"
)

// runStep performs the per-builder step shared by both strategies:
//
//  1. Skip when the dataset already holds the target type (seeded or produced
//     earlier in this run).
//  2. A lookup miss means the plan and registry diverged after validation;
//     that is a contract violation and fails fast regardless of error policy.
//  3. Invoke the builder, racing a timer when a timeout is configured.
//  4. On success, record the elapsed time and return the value for folding.
//  5. On failure, wrap with builder and target context, or log and return no
//     contribution when ContinueOnError is set.
//
// The returned Data is nil for skips and suppressed failures; callers fold
// only non-nil values.
func runStep(ctx context.Context, ds *data.DataSet, req Request, opts Options, collector *stats.Collector, target string) (data.Data, error) {
	logger := ctxlog.FromContext(ctx).With("run_id", collector.RunID(), "type", target)

	if ds.Contains(target) {
		logger.Debug("Skipping builder, value already present.")
		collector.RecordSkip()
		return nil, nil
	}

	b, ok := req.Builders.Lookup(target)
	if !ok {
		return nil, fmt.Errorf("no builder registered for %q: plan and registry are out of sync", target)
	}
	name := b.Describe().Name

	collector.BuilderStarted()
	defer collector.BuilderFinished()

	logger.Debug("Invoking builder.", "builder", name)
	start := time.Now()
	value, err := invoke(ctx, b, ds, opts, target)
	if err != nil {
		if opts.ContinueOnError {
			logger.Warn("Builder failed, continuing without its output.",
				"builder", name, "error", err)
			return nil, nil
		}
		return nil, err
	}

	elapsed := time.Since(start)
	collector.RecordExecution(target, elapsed)
	logger.Debug("Builder finished.", "builder", name, "elapsed", elapsed)
	return value, nil
}

// invoke calls the builder, enforcing the per-builder timeout when one is
// configured. The builder receives a context carrying the deadline, so
// cancellation-aware builders can stop early; the engine itself only abandons
// the waiter and never force-terminates the goroutine.
func invoke(ctx context.Context, b builder.DataBuilder, ds *data.DataSet, opts Options, target string) (data.Data, error) {
	name := b.Describe().Name

	if opts.Timeout <= 0 {
		value, err := b.Build(ctx, ds)
		if err != nil {
			return nil, &BuilderExecutionError{Builder: name, Target: target, Cause: err}
		}
		return value, nil
	}

	bctx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	type outcome struct {
		value data.Data
		err   error
	}
	done := make(chan outcome, 1)
	go func() {
		value, err := b.Build(bctx, ds)
		done <- outcome{value: value, err: err}
	}()

	select {
	case out := <-done:
		if out.err != nil {
			return nil, &BuilderExecutionError{Builder: name, Target: target, Cause: out.err}
		}
		return out.value, nil
	case <-bctx.Done():
		if ctx.Err() != nil {
			// The run itself was cancelled, not this builder's timer.
			return nil, &BuilderExecutionError{Builder: name, Target: target, Cause: ctx.Err()}
		}
		return nil, &TimeoutError{Builder: name, Target: target, Limit: opts.Timeout}
	}
}
