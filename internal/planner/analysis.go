package planner

import (
	"context"
	"math"

	"github.com/vk/databuild/internal/ctxlog"
)

// PlanStats summarizes a valid plan's shape. All fields are zero for an
// invalid plan.
type PlanStats struct {
	// SequentialSteps is the number of builder invocations a sequential run
	// performs, i.e. the length of the execution order.
	SequentialSteps int
	// ParallelLevelCount is the number of parallel levels.
	ParallelLevelCount int
	// AverageConcurrency is nodes divided by levels.
	AverageConcurrency float64
	// ComplexityScore is nodes * levels * (1 + coefficient of variation of
	// the level sizes); it grows with both depth and unevenness.
	ComplexityScore float64
}

// Stats derives summary analytics from a plan.
func (p *Planner) Stats(plan *Plan) PlanStats {
	if !plan.IsValid || plan.NodeCount == 0 {
		return PlanStats{}
	}

	nodes := float64(plan.NodeCount)
	levels := float64(plan.LevelCount)

	sizes := make([]float64, len(plan.ParallelLevels))
	for i, level := range plan.ParallelLevels {
		sizes[i] = float64(len(level))
	}

	return PlanStats{
		SequentialSteps:    plan.NodeCount,
		ParallelLevelCount: plan.LevelCount,
		AverageConcurrency: nodes / levels,
		ComplexityScore:    nodes * levels * (1 + coefficientOfVariation(sizes)),
	}
}

// coefficientOfVariation is the population standard deviation over the mean,
// measuring how unevenly sized the levels are.
func coefficientOfVariation(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))
	if mean == 0 {
		return 0
	}
	var variance float64
	for _, v := range values {
		d := v - mean
		variance += d * d
	}
	variance /= float64(len(values))
	return math.Sqrt(variance) / mean
}

// DependencyReport is the introspection view of the requested targets'
// subgraph. It is advisory only and has no side effects on planning.
type DependencyReport struct {
	// Direct maps each node to the types it consumes directly.
	Direct map[string][]string
	// Transitive maps each node to its full recursive dependency closure.
	Transitive map[string][]string
	// Roots lists nodes with no dependencies.
	Roots []string
	// Leaves lists requested targets nothing else depends on.
	Leaves []string
}

// AnalyzeDependencies builds a fresh graph and reports the dependency
// structure of each target's reachable subgraph.
func (p *Planner) AnalyzeDependencies(ctx context.Context, targets []string) *DependencyReport {
	logger := ctxlog.FromContext(ctx)
	g := p.buildGraph()

	report := &DependencyReport{
		Direct:     make(map[string][]string),
		Transitive: make(map[string][]string),
	}

	scope := g.Order(targets)
	for _, id := range scope {
		deps, err := g.Dependencies(id)
		if err != nil {
			continue
		}
		report.Direct[id] = deps
		report.Transitive[id] = transitiveClosure(report.Transitive, deps)
		if len(deps) == 0 {
			report.Roots = append(report.Roots, id)
		}
	}

	for _, target := range targets {
		dependents, err := g.Dependents(target)
		if err != nil {
			continue
		}
		if len(dependents) == 0 {
			report.Leaves = append(report.Leaves, target)
		}
	}

	logger.Debug("Dependency analysis complete.",
		"nodes", len(scope), "roots", len(report.Roots), "leaves", len(report.Leaves))
	return report
}

// transitiveClosure unions the direct deps with each dep's already-computed
// closure. Scope iteration is topological, so every dependency's closure is
// complete before its dependents ask for it.
func transitiveClosure(closures map[string][]string, deps []string) []string {
	var (
		out  []string
		seen = make(map[string]bool)
	)
	add := func(id string) {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	for _, dep := range deps {
		add(dep)
		for _, inner := range closures[dep] {
			add(inner)
		}
	}
	return out
}
