package registry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/databuild/internal/builder"
	"github.com/vk/databuild/internal/data"
)

func noop(name, provides string, consumes ...string) builder.DataBuilder {
	return builder.Func(name, provides, consumes, func(_ context.Context, _ *data.DataSet) (data.Data, error) {
		return data.NewValue(provides, nil), nil
	})
}

func TestRegister(t *testing.T) {
	r := New()

	require.NoError(t, r.Register(noop("a", "A")))
	require.NoError(t, r.Register(noop("b", "B", "A")))
	assert.Equal(t, 2, r.Len())

	t.Run("duplicate produced type is rejected", func(t *testing.T) {
		err := r.Register(noop("a2", "A"))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrDuplicateBuilder)
		assert.ErrorContains(t, err, `already produced by builder "a"`)
	})

	t.Run("empty produced type is rejected", func(t *testing.T) {
		err := r.Register(noop("broken", ""))
		assert.ErrorContains(t, err, "declares no produced type")
	})
}

func TestReplace(t *testing.T) {
	r := New()
	require.NoError(t, r.Register(noop("a", "A")))

	r.Replace(noop("a2", "A"))
	assert.Equal(t, 1, r.Len())

	b, ok := r.Lookup("A")
	require.True(t, ok)
	assert.Equal(t, "a2", b.Describe().Name)
}

func TestLookup(t *testing.T) {
	r := New()
	require.NoError(t, r.Register(noop("a", "A")))

	b, ok := r.Lookup("A")
	require.True(t, ok)
	assert.Equal(t, "a", b.Describe().Name)

	_, ok = r.Lookup("missing")
	assert.False(t, ok)
}

func TestDescriptorsOrder(t *testing.T) {
	r := New()
	require.NoError(t, r.Register(noop("c", "C", "A", "B")))
	require.NoError(t, r.Register(noop("a", "A")))
	require.NoError(t, r.Register(noop("b", "B", "A")))

	descs := r.Descriptors()
	require.Len(t, descs, 3)
	assert.Equal(t, []string{"C", "A", "B"}, []string{descs[0].Provides, descs[1].Provides, descs[2].Provides})
	assert.Equal(t, []string{"A", "B"}, descs[0].Consumes)
}
