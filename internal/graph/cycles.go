package graph

import "strings"

// DetectCycles runs a depth-first search from every unvisited node with a
// recursion-stack set. Revisiting a node already on the stack emits one
// human-readable trace of the path taken, rendered "A -> B -> A".
//
// The same underlying cycle may be reported more than once when reachable
// from different roots. Callers treat any non-empty result as "invalid"
// rather than counting distinct cycles.
func (g *Graph) DetectCycles() []string {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	var (
		traces  []string
		visited = make(map[string]bool)
		onStack = make(map[string]bool)
		path    []string
		visit   func(id string)
	)

	visit = func(id string) {
		n, ok := g.nodes[id]
		if !ok {
			return
		}
		if onStack[id] {
			traces = append(traces, renderCycle(path, id))
			return
		}
		if visited[id] {
			return
		}
		visited[id] = true
		onStack[id] = true
		path = append(path, id)

		for _, dep := range n.deps {
			visit(dep)
		}

		path = path[:len(path)-1]
		onStack[id] = false
	}

	for _, id := range g.order {
		if !visited[id] {
			visit(id)
		}
	}
	return traces
}

// renderCycle formats the portion of the current DFS path that closes the
// cycle at repeated.
func renderCycle(path []string, repeated string) string {
	start := 0
	for i, id := range path {
		if id == repeated {
			start = i
			break
		}
	}
	segment := append(append([]string(nil), path[start:]...), repeated)
	return strings.Join(segment, " -> ")
}
