// Package planner turns the registered builder set into validated execution
// plans: a dependency-respecting order, its parallel leveling, and the
// analytics that characterize it.
package planner

// Plan is the immutable result of one planning call. When IsValid is false,
// ExecutionOrder and ParallelLevels are empty and NodeCount and LevelCount
// are zero; Cycles and Missing say why.
type Plan struct {
	// Targets is the caller-requested produced types, in caller order.
	Targets []string
	// ExecutionOrder is a flat sequence in which every dependency precedes
	// its dependents.
	ExecutionOrder []string
	// ParallelLevels partitions ExecutionOrder: each level's members depend
	// only on strictly earlier levels and never on each other.
	ParallelLevels [][]string
	// Cycles holds human-readable cycle traces. The same underlying cycle may
	// appear more than once.
	Cycles []string
	// Missing holds consumed type names with no registered builder.
	Missing []string

	IsValid    bool
	NodeCount  int
	LevelCount int
}
