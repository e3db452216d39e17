// Package report provides a stock combine builder folding the other stock
// builders' outputs into a human-readable summary.
package report

import (
	"context"
	"fmt"
	"strings"

	"github.com/vk/databuild/internal/builder"
	"github.com/vk/databuild/internal/data"
	"github.com/vk/databuild/internal/registry"

	"github.com/vk/databuild/builders/envsource"
	"github.com/vk/databuild/builders/httpfetch"
)

// TypeName is the data type this builder produces.
const TypeName = "Report"

// Summary is the produced report text.
type Summary struct {
	Text string
}

// Type implements the data.Data interface.
func (Summary) Type() string { return TypeName }

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register installs the builder with the engine registry.
func (m *Module) Register(r *registry.Registry) error {
	return r.Register(builder.Combine("report", TypeName,
		[]string{envsource.TypeName, httpfetch.ResultType}, build))
}

func build(_ context.Context, in []data.Data) (data.Data, error) {
	env, ok := in[0].(envsource.Snapshot)
	if !ok {
		return nil, fmt.Errorf("unexpected %s value of type %T", envsource.TypeName, in[0])
	}
	fetch, ok := in[1].(httpfetch.Result)
	if !ok {
		return nil, fmt.Errorf("unexpected %s value of type %T", httpfetch.ResultType, in[1])
	}

	var b strings.Builder
	fmt.Fprintf(&b, "environment: %d variables\n", len(env.Vars))
	fmt.Fprintf(&b, "fetched %s: status %d, %d bytes in %s\n",
		fetch.URL, fetch.StatusCode, fetch.BodyBytes, fetch.Elapsed)
	return Summary{Text: b.String()}, nil
}
