// Package graph implements the dependency graph over builder descriptors:
// construction, cycle detection, missing-dependency detection, and
// topological ordering.
package graph

import (
	"fmt"

	"github.com/vk/databuild/internal/builder"
)

// New creates and returns an initialized, empty Graph.
func New() *Graph {
	return &Graph{nodes: make(map[string]*node)}
}

// AddNode inserts a node for the descriptor, keyed by its produced type. If
// a node for the same produced type already exists, the call is a no-op; the
// first registration wins within one graph instance.
func (g *Graph) AddNode(desc builder.Descriptor) {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	if _, ok := g.nodes[desc.Provides]; ok {
		return
	}
	g.nodes[desc.Provides] = newNode(desc)
	g.order = append(g.order, desc.Provides)
}

// WireEdges clears all relation sets and rebuilds them from the descriptors:
// for every node and every type it consumes, an edge is added when a node for
// that type exists. Consumed types with no matching node are left unwired
// here; Missing surfaces them later.
func (g *Graph) WireEdges() {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	for _, id := range g.order {
		n := g.nodes[id]
		n.deps = nil
		n.depSet = make(map[string]struct{})
		n.dependents = nil
		n.dependentSet = make(map[string]struct{})
	}

	for _, id := range g.order {
		n := g.nodes[id]
		for _, consumed := range n.desc.Consumes {
			dep, ok := g.nodes[consumed]
			if !ok {
				continue
			}
			g.addEdge(n, id, dep, consumed)
		}
	}
}

// addEdge records the relation on both sides. Callers hold the write lock.
func (g *Graph) addEdge(n *node, id string, dep *node, depID string) {
	if _, ok := n.depSet[depID]; !ok {
		n.depSet[depID] = struct{}{}
		n.deps = append(n.deps, depID)
	}
	if _, ok := dep.dependentSet[id]; !ok {
		dep.dependentSet[id] = struct{}{}
		dep.dependents = append(dep.dependents, id)
	}
}

// Has reports whether a node exists for the produced type.
func (g *Graph) Has(id string) bool {
	g.mutex.RLock()
	defer g.mutex.RUnlock()
	_, ok := g.nodes[id]
	return ok
}

// Len returns the number of nodes in the graph.
func (g *Graph) Len() int {
	g.mutex.RLock()
	defer g.mutex.RUnlock()
	return len(g.nodes)
}

// Dependencies returns the produced types the given node depends on, in
// insertion order.
func (g *Graph) Dependencies(id string) ([]string, error) {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	n, ok := g.nodes[id]
	if !ok {
		return nil, fmt.Errorf("node not found: %s", id)
	}
	return append([]string(nil), n.deps...), nil
}

// Dependents returns the produced types that depend on the given node, in
// insertion order.
func (g *Graph) Dependents(id string) ([]string, error) {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	n, ok := g.nodes[id]
	if !ok {
		return nil, fmt.Errorf("node not found: %s", id)
	}
	return append([]string(nil), n.dependents...), nil
}
