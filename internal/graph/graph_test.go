package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/databuild/internal/builder"
)

func desc(provides string, consumes ...string) builder.Descriptor {
	return builder.Descriptor{Name: provides + "-builder", Provides: provides, Consumes: consumes}
}

func build(descs ...builder.Descriptor) *Graph {
	g := New()
	for _, d := range descs {
		g.AddNode(d)
	}
	g.WireEdges()
	return g
}

// indexOf returns the position of id in seq, or -1.
func indexOf(seq []string, id string) int {
	for i, s := range seq {
		if s == id {
			return i
		}
	}
	return -1
}

func TestAddNode(t *testing.T) {
	g := New()
	g.AddNode(desc("A"))
	assert.Equal(t, 1, g.Len())
	assert.True(t, g.Has("A"))

	// First registration for a key wins; re-adding is a no-op.
	g.AddNode(builder.Descriptor{Name: "other", Provides: "A", Consumes: []string{"B"}})
	assert.Equal(t, 1, g.Len())
	g.WireEdges()
	deps, err := g.Dependencies("A")
	require.NoError(t, err)
	assert.Empty(t, deps)
}

func TestWireEdges(t *testing.T) {
	t.Run("edges are mirrored", func(t *testing.T) {
		g := build(desc("A"), desc("B", "A"))

		deps, err := g.Dependencies("B")
		require.NoError(t, err)
		assert.Equal(t, []string{"A"}, deps)

		dependents, err := g.Dependents("A")
		require.NoError(t, err)
		assert.Equal(t, []string{"B"}, dependents)
	})

	t.Run("unmatched consumed types are left unwired", func(t *testing.T) {
		g := build(desc("B", "Unknown"))
		deps, err := g.Dependencies("B")
		require.NoError(t, err)
		assert.Empty(t, deps)
	})

	t.Run("rewiring clears previous relations", func(t *testing.T) {
		g := build(desc("A"), desc("B", "A"))
		g.WireEdges()
		g.WireEdges()

		dependents, err := g.Dependents("A")
		require.NoError(t, err)
		assert.Equal(t, []string{"B"}, dependents, "repeated wiring must not duplicate edges")
	})

	t.Run("unknown node lookups fail", func(t *testing.T) {
		g := build(desc("A"))
		_, err := g.Dependencies("nope")
		assert.ErrorContains(t, err, "node not found")
		_, err = g.Dependents("nope")
		assert.ErrorContains(t, err, "node not found")
	})
}

func TestOrder(t *testing.T) {
	t.Run("dependencies precede dependents", func(t *testing.T) {
		g := build(desc("A"), desc("B", "A"), desc("C", "A"), desc("D", "B", "C"))

		seq := g.Order([]string{"D"})
		require.Len(t, seq, 4)
		assert.Less(t, indexOf(seq, "A"), indexOf(seq, "B"))
		assert.Less(t, indexOf(seq, "A"), indexOf(seq, "C"))
		assert.Less(t, indexOf(seq, "B"), indexOf(seq, "D"))
		assert.Less(t, indexOf(seq, "C"), indexOf(seq, "D"))
	})

	t.Run("deduplicates repeated and overlapping targets", func(t *testing.T) {
		g := build(desc("A"), desc("B", "A"), desc("C", "A"))

		seq := g.Order([]string{"B", "C", "B", "A"})
		assert.Equal(t, []string{"A", "B", "C"}, seq)
	})

	t.Run("deterministic sibling order follows consume order", func(t *testing.T) {
		g := build(desc("X"), desc("Y"), desc("Z", "Y", "X"))
		assert.Equal(t, []string{"Y", "X", "Z"}, g.Order([]string{"Z"}))
	})

	t.Run("unknown targets are skipped", func(t *testing.T) {
		g := build(desc("A"))
		assert.Equal(t, []string{"A"}, g.Order([]string{"nope", "A"}))
	})

	t.Run("cyclic graph terminates with a partial order", func(t *testing.T) {
		g := build(desc("X", "Y"), desc("Y", "X"))
		seq := g.Order([]string{"X"})
		assert.Len(t, seq, 2, "visited set must stop recursion")
	})
}

func TestDetectCycles(t *testing.T) {
	t.Run("acyclic graph reports nothing", func(t *testing.T) {
		g := build(desc("A"), desc("B", "A"), desc("C", "A", "B"))
		assert.Empty(t, g.DetectCycles())
	})

	t.Run("direct cycle is traced", func(t *testing.T) {
		g := build(desc("X", "Y"), desc("Y", "X"))
		traces := g.DetectCycles()
		require.NotEmpty(t, traces)
		assert.Contains(t, traces[0], " -> ")
	})

	t.Run("longer cycle is traced through the full path", func(t *testing.T) {
		g := build(desc("A", "C"), desc("B", "A"), desc("C", "B"))
		traces := g.DetectCycles()
		require.NotEmpty(t, traces)
		assert.Equal(t, "A -> C -> B -> A", traces[0])
	})

	t.Run("self-cycle is traced", func(t *testing.T) {
		g := build(desc("A", "A"))
		traces := g.DetectCycles()
		require.NotEmpty(t, traces)
		assert.Equal(t, "A -> A", traces[0])
	})

	t.Run("cycle reachable from several roots may repeat", func(t *testing.T) {
		g := build(desc("P", "X"), desc("Q", "X"), desc("X", "Y"), desc("Y", "X"))
		traces := g.DetectCycles()
		// Multiplicity is acceptable; emptiness is what callers key off.
		assert.NotEmpty(t, traces)
	})
}

func TestMissing(t *testing.T) {
	t.Run("fully satisfied chain has no missing types", func(t *testing.T) {
		g := build(desc("A"), desc("B", "A"), desc("C", "B"))
		assert.Empty(t, g.Missing([]string{"C"}))
	})

	t.Run("unregistered target is missing", func(t *testing.T) {
		g := build(desc("A"))
		assert.Equal(t, []string{"Z"}, g.Missing([]string{"Z"}))
	})

	t.Run("transitively missing type is found once", func(t *testing.T) {
		g := build(desc("B", "Gone"), desc("C", "B", "Gone"))
		assert.Equal(t, []string{"Gone"}, g.Missing([]string{"C"}))
	})

	t.Run("only the requested subgraph is scanned", func(t *testing.T) {
		g := build(desc("A"), desc("B", "Gone"))
		assert.Empty(t, g.Missing([]string{"A"}))
	})
}
