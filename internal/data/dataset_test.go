package data

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDataSet(t *testing.T) {
	ds := NewDataSet(NewValue("A", 1), NewValue("B", "two"))
	require.NotNil(t, ds)
	assert.Equal(t, 2, ds.Len())
	assert.True(t, ds.Contains("A"))
	assert.True(t, ds.Contains("B"))
	assert.False(t, ds.Contains("C"))
}

func TestDataSetAdd(t *testing.T) {
	t.Run("overwrites by declared type", func(t *testing.T) {
		ds := NewDataSet()
		ds.Add(NewValue("A", 1))
		ds.Add(NewValue("A", 2))

		got, ok := ds.Get("A")
		require.True(t, ok)
		assert.Equal(t, 2, got.(Value).Payload)
		assert.Equal(t, 1, ds.Len())
	})

	t.Run("ignores nil values", func(t *testing.T) {
		ds := NewDataSet()
		ds.Add(nil, NewValue("A", 1))
		assert.Equal(t, 1, ds.Len())
	})
}

func TestDataSetClone(t *testing.T) {
	ds := NewDataSet(NewValue("A", 1))
	clone := ds.Clone()

	clone.Add(NewValue("B", 2))
	assert.True(t, clone.Contains("B"))
	assert.False(t, ds.Contains("B"), "mutating the clone must not affect the original")

	ds.Add(NewValue("C", 3))
	assert.False(t, clone.Contains("C"))
}

func TestDataSetMerge(t *testing.T) {
	t.Run("other wins on conflict", func(t *testing.T) {
		ds := NewDataSet(NewValue("A", "mine"), NewValue("B", "kept"))
		other := NewDataSet(NewValue("A", "theirs"))

		ds.Merge(other)

		got, ok := ds.Get("A")
		require.True(t, ok)
		assert.Equal(t, "theirs", got.(Value).Payload)
		assert.True(t, ds.Contains("B"))
	})

	t.Run("nil other is a no-op", func(t *testing.T) {
		ds := NewDataSet(NewValue("A", 1))
		ds.Merge(nil)
		assert.Equal(t, 1, ds.Len())
	})
}

func TestDataSetTypes(t *testing.T) {
	ds := NewDataSet(NewValue("A", 1), NewValue("B", 2))
	assert.ElementsMatch(t, []string{"A", "B"}, ds.Types())
}
