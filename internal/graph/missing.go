package graph

// Missing scans each target's reachable subgraph and returns every consumed
// type with no corresponding node, each recorded once, in discovery order.
// Targets that have no node themselves are reported the same way.
func (g *Graph) Missing(targets []string) []string {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	var (
		missing []string
		seen    = make(map[string]bool)
		visited = make(map[string]bool)
		visit   func(id string)
	)

	record := func(id string) {
		if !seen[id] {
			seen[id] = true
			missing = append(missing, id)
		}
	}

	visit = func(id string) {
		if visited[id] {
			return
		}
		visited[id] = true

		n, ok := g.nodes[id]
		if !ok {
			record(id)
			return
		}
		for _, consumed := range n.desc.Consumes {
			visit(consumed)
		}
	}

	for _, target := range targets {
		visit(target)
	}
	return missing
}
