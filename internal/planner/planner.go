package planner

import (
	"context"

	"github.com/vk/databuild/internal/ctxlog"
	"github.com/vk/databuild/internal/graph"
	"github.com/vk/databuild/internal/registry"
)

// Planner derives execution plans from the current builder set. A fresh graph
// is built on every planning call, queried, and discarded; callers that want
// to reuse a plan cache the Plan, not the graph.
type Planner struct {
	registry *registry.Registry
}

// New creates a Planner over the given registry.
func New(reg *registry.Registry) *Planner {
	return &Planner{registry: reg}
}

// buildGraph constructs and wires a graph from the full registered set.
func (p *Planner) buildGraph() *graph.Graph {
	g := graph.New()
	for _, desc := range p.registry.Descriptors() {
		g.AddNode(desc)
	}
	g.WireEdges()
	return g
}

// CreatePlan builds a fresh graph, validates it for the requested targets,
// and computes the execution order and parallel leveling when valid. Cycle or
// missing-dependency findings leave the plan empty rather than partial; no
// run is attempted from an invalid plan.
func (p *Planner) CreatePlan(ctx context.Context, targets []string) *Plan {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Planning started.", "targets", targets, "registered", p.registry.Len())

	g := p.buildGraph()
	plan := &Plan{
		Targets: append([]string(nil), targets...),
		Cycles:  g.DetectCycles(),
		Missing: g.Missing(targets),
	}
	plan.IsValid = len(plan.Cycles) == 0 && len(plan.Missing) == 0

	if !plan.IsValid {
		logger.Debug("Planning found an invalid graph.",
			"cycles", len(plan.Cycles), "missing", plan.Missing)
		return plan
	}

	plan.ExecutionOrder = g.Order(targets)
	plan.ParallelLevels = computeLevels(g, plan.ExecutionOrder)
	plan.NodeCount = len(plan.ExecutionOrder)
	plan.LevelCount = len(plan.ParallelLevels)

	logger.Debug("Planning complete.",
		"nodes", plan.NodeCount, "levels", plan.LevelCount)
	return plan
}

// Validate is a pure gate over a plan's findings: a cycle error first, then a
// missing-builder error. It has no side effects and never recovers either
// condition silently.
func (p *Planner) Validate(plan *Plan) error {
	if len(plan.Cycles) > 0 {
		return &CircularDependencyError{Traces: append([]string(nil), plan.Cycles...)}
	}
	if len(plan.Missing) > 0 {
		return &MissingBuilderError{Missing: append([]string(nil), plan.Missing...)}
	}
	return nil
}

// computeLevels partitions an already-topological order into parallel levels.
// It scans the order repeatedly; a node joins the current level once every
// one of its dependencies has been assigned to a strictly earlier level.
func computeLevels(g *graph.Graph, order []string) [][]string {
	var (
		levels   [][]string
		assigned = make(map[string]int, len(order))
	)

	for len(assigned) < len(order) {
		var level []string
		for _, id := range order {
			if _, done := assigned[id]; done {
				continue
			}
			deps, err := g.Dependencies(id)
			if err != nil {
				continue
			}
			ready := true
			for _, dep := range deps {
				if _, ok := assigned[dep]; !ok {
					ready = false
					break
				}
			}
			if ready {
				level = append(level, id)
			}
		}
		if len(level) == 0 {
			// Defensive exit: only reachable if the order was not topological,
			// which a validated plan rules out.
			break
		}
		for _, id := range level {
			assigned[id] = len(levels)
		}
		levels = append(levels, level)
	}
	return levels
}
