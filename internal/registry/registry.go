// Package registry holds the builders registered for an engine instance,
// keyed by the data type each one produces.
package registry

import (
	"errors"
	"fmt"
	"sync"

	"github.com/vk/databuild/internal/builder"
)

// ErrDuplicateBuilder is returned when a second builder claims a produced
// type that is already registered.
var ErrDuplicateBuilder = errors.New("duplicate builder registration")

// Module is the interface stock builder packages implement to register
// themselves with an engine instance.
type Module interface {
	Register(r *Registry) error
}

// Registry stores builders for a single engine instance. It enforces the
// duplicate-registration policy only; graph validation belongs to the planner.
type Registry struct {
	mu       sync.RWMutex
	builders map[string]builder.DataBuilder
	// order remembers registration sequence so Descriptors is deterministic.
	order []string
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{builders: make(map[string]builder.DataBuilder)}
}

// Register adds a builder keyed by its produced type. Registering a second
// builder for the same produced type fails with ErrDuplicateBuilder; use
// Replace to overwrite deliberately.
func (r *Registry) Register(b builder.DataBuilder) error {
	desc := b.Describe()
	if desc.Provides == "" {
		return fmt.Errorf("builder %q declares no produced type", desc.Name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.builders[desc.Provides]; ok {
		return fmt.Errorf("%w: type %q already produced by builder %q",
			ErrDuplicateBuilder, desc.Provides, existing.Describe().Name)
	}
	r.builders[desc.Provides] = b
	r.order = append(r.order, desc.Provides)
	return nil
}

// Replace installs a builder for its produced type, overwriting any existing
// registration.
func (r *Registry) Replace(b builder.DataBuilder) {
	desc := b.Describe()
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.builders[desc.Provides]; !ok {
		r.order = append(r.order, desc.Provides)
	}
	r.builders[desc.Provides] = b
}

// Lookup returns the builder producing the given type.
func (r *Registry) Lookup(provides string) (builder.DataBuilder, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.builders[provides]
	return b, ok
}

// Descriptors enumerates all registered builders in registration order. The
// planner rebuilds its graph from this snapshot on every planning call.
func (r *Registry) Descriptors() []builder.Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]builder.Descriptor, 0, len(r.order))
	for _, provides := range r.order {
		out = append(out, r.builders[provides].Describe())
	}
	return out
}

// Len returns the number of registered builders.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.builders)
}
