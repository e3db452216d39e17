package graph

import (
	"sync"

	"github.com/vk/databuild/internal/builder"
)

// Graph is the directed dependency graph over builder descriptors. Nodes are
// keyed by produced type and held in an arena map; relations are key sets
// into that arena, never direct back-pointers. All operations are
// concurrency-safe, though a graph is normally built and queried by one
// planning call and then discarded.
type Graph struct {
	mutex sync.RWMutex
	nodes map[string]*node
	// order remembers node insertion sequence so traversals get a
	// deterministic tie-break among siblings.
	order []string
}

// node wraps one descriptor. deps and dependents are mirrored: an edge is
// always recorded on both sides in the same wiring step.
type node struct {
	desc builder.Descriptor
	// deps is the insertion-ordered list of produced types this node needs.
	deps   []string
	depSet map[string]struct{}
	// dependents is the insertion-ordered list of produced types needing this node.
	dependents   []string
	dependentSet map[string]struct{}
}

func newNode(desc builder.Descriptor) *node {
	return &node{
		desc:         desc,
		depSet:       make(map[string]struct{}),
		dependentSet: make(map[string]struct{}),
	}
}
