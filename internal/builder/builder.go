// Package builder defines the unit-of-work contract: a builder produces
// exactly one named data type from a declared set of consumed types.
package builder

import (
	"context"

	"github.com/vk/databuild/internal/data"
)

// Descriptor identifies a builder by the single type it produces and the
// types it needs. Consumes order is preserved; it is the deterministic
// tie-break used when wiring the dependency graph.
type Descriptor struct {
	Name     string
	Provides string
	Consumes []string
}

// DataBuilder is the single capability every builder reduces to. Build reads
// its declared inputs from the shared DataSet and returns the one value it
// produces. Builders must not write to the DataSet themselves; the executor
// folds returned values in after each step or level.
//
// The context carries the run logger and, when a per-builder timeout is
// configured, a deadline. Cancellation-aware builders should honor ctx; the
// executor never force-terminates a builder that ignores it.
type DataBuilder interface {
	Describe() Descriptor
	Build(ctx context.Context, ds *data.DataSet) (data.Data, error)
}
