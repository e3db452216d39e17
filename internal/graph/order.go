package graph

// Order returns a dependency-respecting flat sequence covering each target's
// reachable subgraph, visiting targets in caller-given order. A node's
// dependencies are visited before the node itself, in insertion order, which
// gives a deterministic tie-break among siblings.
//
// A global visited set deduplicates overlapping ancestor chains and also
// stops infinite recursion on a cyclic graph; in that case the result is a
// partial, non-canonical ordering. Cycle safety is DetectCycles' job, and
// the planner never orders a graph that failed it.
func (g *Graph) Order(targets []string) []string {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	var (
		sequence []string
		visited  = make(map[string]bool)
		visit    func(id string)
	)

	visit = func(id string) {
		if visited[id] {
			return
		}
		n, ok := g.nodes[id]
		if !ok {
			// Unresolvable type; Missing reports it, ordering skips it.
			return
		}
		visited[id] = true
		for _, dep := range n.deps {
			visit(dep)
		}
		sequence = append(sequence, id)
	}

	for _, target := range targets {
		visit(target)
	}
	return sequence
}
