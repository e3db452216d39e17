package executor

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vk/databuild/internal/builder"
	"github.com/vk/databuild/internal/data"
	"github.com/vk/databuild/internal/planner"
	"github.com/vk/databuild/internal/registry"
)

// callLog records which builders actually ran, in invocation order.
type callLog struct {
	mu    sync.Mutex
	calls []string
}

func (l *callLog) record(name string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls = append(l.calls, name)
}

func (l *callLog) snapshot() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.calls...)
}

// produce returns a builder producing a constant payload after an optional
// sleep, recording the call.
func produce(log *callLog, provides string, payload any, sleep time.Duration, consumes ...string) builder.DataBuilder {
	return builder.Func(provides+"-builder", provides, consumes,
		func(_ context.Context, _ *data.DataSet) (data.Data, error) {
			if log != nil {
				log.record(provides)
			}
			if sleep > 0 {
				time.Sleep(sleep)
			}
			return data.NewValue(provides, payload), nil
		})
}

// failing returns a builder that always fails with cause.
func failing(provides string, cause error, consumes ...string) builder.DataBuilder {
	return builder.Func(provides+"-builder", provides, consumes,
		func(_ context.Context, _ *data.DataSet) (data.Data, error) {
			return nil, cause
		})
}

func setup(t *testing.T, builders ...builder.DataBuilder) (*registry.Registry, *planner.Planner) {
	t.Helper()
	reg := registry.New()
	for _, b := range builders {
		require.NoError(t, reg.Register(b))
	}
	return reg, planner.New(reg)
}

func makePlan(t *testing.T, p *planner.Planner, targets ...string) *planner.Plan {
	t.Helper()
	plan := p.CreatePlan(context.Background(), targets)
	require.True(t, plan.IsValid, "test graph must plan cleanly")
	return plan
}

func payloadOf(t *testing.T, ds *data.DataSet, name string) any {
	t.Helper()
	d, ok := ds.Get(name)
	require.True(t, ok, "dataset must contain %q", name)
	return d.(data.Value).Payload
}

// emptyLookup always misses, simulating a registry that diverged from the
// plan after validation.
type emptyLookup struct{}

func (emptyLookup) Lookup(string) (builder.DataBuilder, bool) { return nil, false }
