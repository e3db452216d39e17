// Package engine is the composition root binding a registry, a planner, and
// both execution strategies behind a one-call Run surface.
package engine

import (
	"context"

	"github.com/vk/databuild/internal/ctxlog"
	"github.com/vk/databuild/internal/data"
	"github.com/vk/databuild/internal/executor"
	"github.com/vk/databuild/internal/planner"
	"github.com/vk/databuild/internal/registry"
)

// Engine owns the builder registry and the planning/execution machinery for
// one application instance.
type Engine struct {
	registry   *registry.Registry
	planner    *planner.Planner
	sequential *executor.Sequential
	parallel   *executor.Parallel
}

// New creates an Engine over the given registry.
func New(reg *registry.Registry) *Engine {
	return &Engine{
		registry:   reg,
		planner:    planner.New(reg),
		sequential: executor.NewSequential(),
		parallel:   executor.NewParallel(),
	}
}

// Registry exposes the engine's registry for builder installation.
func (e *Engine) Registry() *registry.Registry { return e.registry }

// Plan creates and validates a plan for the targets. Planning failures are
// always surfaced; an invalid plan is never returned alongside a nil error.
func (e *Engine) Plan(ctx context.Context, targets []string) (*planner.Plan, error) {
	plan := e.planner.CreatePlan(ctx, targets)
	if err := e.planner.Validate(plan); err != nil {
		return nil, err
	}
	return plan, nil
}

// Stats derives summary analytics from a plan.
func (e *Engine) Stats(plan *planner.Plan) planner.PlanStats {
	return e.planner.Stats(plan)
}

// AnalyzeDependencies reports the dependency structure of the targets'
// subgraph without planning or running anything.
func (e *Engine) AnalyzeDependencies(ctx context.Context, targets []string) *planner.DependencyReport {
	return e.planner.AnalyzeDependencies(ctx, targets)
}

// RunRequest describes one run.
type RunRequest struct {
	// Targets is the produced types the run must satisfy.
	Targets []string
	// Seed optionally pre-populates the dataset; seeded types are skipped.
	Seed *data.DataSet
	// Parallel selects level-wise concurrent execution.
	Parallel bool
	// Options tune timeouts, concurrency bound, and error policy.
	Options executor.Options
}

// Run plans the targets and executes them with the selected strategy.
func (e *Engine) Run(ctx context.Context, req RunRequest) (*executor.Result, error) {
	logger := ctxlog.FromContext(ctx)

	plan, err := e.Plan(ctx, req.Targets)
	if err != nil {
		return nil, err
	}
	logger.Debug("Plan validated.", "targets", req.Targets,
		"nodes", plan.NodeCount, "levels", plan.LevelCount, "parallel", req.Parallel)

	var strategy executor.Strategy = e.sequential
	if req.Parallel {
		strategy = e.parallel
	}
	return strategy.Execute(ctx, plan, executor.Request{
		Initial:  req.Seed,
		Builders: e.registry,
	}, req.Options)
}
