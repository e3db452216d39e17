// Package httpfetch provides a stock I/O-bound builder that fetches a seeded
// HTTP target. It is the kind of work the parallel strategy exists for.
package httpfetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/vk/databuild/internal/builder"
	"github.com/vk/databuild/internal/data"
	"github.com/vk/databuild/internal/registry"
)

const (
	// TargetType is the consumed seed type: a URL string.
	TargetType = "HTTPTarget"
	// ResultType is the produced type.
	ResultType = "HTTPResult"
)

// Result describes one completed fetch.
type Result struct {
	URL        string
	StatusCode int
	BodyBytes  int64
	Elapsed    time.Duration
}

// Type implements the data.Data interface.
func (Result) Type() string { return ResultType }

// Module implements the registry.Module interface for this package.
type Module struct {
	// Client may be overridden for tests; nil falls back to a default client.
	Client *http.Client
}

// Register installs the builders with the engine registry. The target type
// gets a placeholder source so plans resolve; its value is expected to be
// seeded, in which case the placeholder is skipped and never runs.
func (m *Module) Register(r *registry.Registry) error {
	client := m.Client
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	if err := r.Register(builder.Source("http_target", TargetType,
		func(_ context.Context) (data.Data, error) {
			return nil, fmt.Errorf("%s must be provided as a seed value", TargetType)
		})); err != nil {
		return err
	}
	return r.Register(builder.Transform("http_fetch", ResultType, TargetType,
		func(ctx context.Context, in data.Data) (data.Data, error) {
			return fetch(ctx, client, in)
		}))
}

func fetch(ctx context.Context, client *http.Client, in data.Data) (data.Data, error) {
	value, ok := in.(data.Value)
	if !ok {
		return nil, fmt.Errorf("%s must be a seeded value, got %T", TargetType, in)
	}
	url, ok := value.Payload.(string)
	if !ok {
		return nil, fmt.Errorf("%s must carry a URL string, got %T", TargetType, value.Payload)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request for %s: %w", url, err)
	}

	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	n, err := io.Copy(io.Discard, resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading body of %s: %w", url, err)
	}

	return Result{
		URL:        url,
		StatusCode: resp.StatusCode,
		BodyBytes:  n,
		Elapsed:    time.Since(start),
	}, nil
}
