// Package envsource provides a stock source builder producing a snapshot of
// the process environment.
package envsource

import (
	"context"
	"os"
	"strings"

	"github.com/vk/databuild/internal/builder"
	"github.com/vk/databuild/internal/data"
	"github.com/vk/databuild/internal/registry"
)

// TypeName is the data type this builder produces.
const TypeName = "EnvData"

// Snapshot holds the captured environment variables.
type Snapshot struct {
	Vars map[string]string
}

// Type implements the data.Data interface.
func (Snapshot) Type() string { return TypeName }

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register installs the builder with the engine registry.
func (m *Module) Register(r *registry.Registry) error {
	return r.Register(builder.Source("env_source", TypeName, build))
}

func build(_ context.Context) (data.Data, error) {
	vars := make(map[string]string)
	for _, e := range os.Environ() {
		if pair := strings.SplitN(e, "=", 2); len(pair) == 2 {
			vars[pair[0]] = pair[1]
		}
	}
	return Snapshot{Vars: vars}, nil
}
