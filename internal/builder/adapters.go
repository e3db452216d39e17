package builder

import (
	"context"
	"fmt"

	"github.com/vk/databuild/internal/data"
)

// funcBuilder adapts a plain function to the DataBuilder interface.
type funcBuilder struct {
	desc Descriptor
	fn   func(ctx context.Context, ds *data.DataSet) (data.Data, error)
}

func (b *funcBuilder) Describe() Descriptor { return b.desc }

func (b *funcBuilder) Build(ctx context.Context, ds *data.DataSet) (data.Data, error) {
	return b.fn(ctx, ds)
}

// Func wraps an arbitrary build function with its metadata.
func Func(name, provides string, consumes []string, fn func(ctx context.Context, ds *data.DataSet) (data.Data, error)) DataBuilder {
	return &funcBuilder{
		desc: Descriptor{Name: name, Provides: provides, Consumes: append([]string(nil), consumes...)},
		fn:   fn,
	}
}

// Source builds a value from no inputs at all.
func Source(name, provides string, fn func(ctx context.Context) (data.Data, error)) DataBuilder {
	return Func(name, provides, nil, func(ctx context.Context, _ *data.DataSet) (data.Data, error) {
		return fn(ctx)
	})
}

// Transform builds a value from exactly one input type. The input is resolved
// and handed to fn directly; a missing input is a contract violation because
// a validated plan guarantees it was produced or seeded earlier.
func Transform(name, provides, consumes string, fn func(ctx context.Context, in data.Data) (data.Data, error)) DataBuilder {
	return Func(name, provides, []string{consumes}, func(ctx context.Context, ds *data.DataSet) (data.Data, error) {
		in, ok := ds.Get(consumes)
		if !ok {
			return nil, fmt.Errorf("builder %q: required input %q not present in dataset", name, consumes)
		}
		return fn(ctx, in)
	})
}

// Combine builds a value from several input types, resolved in declaration
// order before fn runs.
func Combine(name, provides string, consumes []string, fn func(ctx context.Context, in []data.Data) (data.Data, error)) DataBuilder {
	return Func(name, provides, consumes, func(ctx context.Context, ds *data.DataSet) (data.Data, error) {
		inputs := make([]data.Data, len(consumes))
		for i, c := range consumes {
			in, ok := ds.Get(c)
			if !ok {
				return nil, fmt.Errorf("builder %q: required input %q not present in dataset", name, c)
			}
			inputs[i] = in
		}
		return fn(ctx, inputs)
	})
}
