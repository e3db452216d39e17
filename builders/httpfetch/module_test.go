package httpfetch_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/databuild/builders/httpfetch"
	"github.com/vk/databuild/internal/data"
	"github.com/vk/databuild/internal/engine"
	"github.com/vk/databuild/internal/registry"
)

func newEngine(t *testing.T, client *http.Client) *engine.Engine {
	t.Helper()
	reg := registry.New()
	require.NoError(t, (&httpfetch.Module{Client: client}).Register(reg))
	return engine.New(reg)
}

func TestFetchSeededTarget(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("short and stout"))
	}))
	defer server.Close()

	eng := newEngine(t, server.Client())
	res, err := eng.Run(context.Background(), engine.RunRequest{
		Targets: []string{httpfetch.ResultType},
		Seed:    data.NewDataSet(data.NewValue(httpfetch.TargetType, server.URL)),
	})
	require.NoError(t, err)

	d, ok := res.DataSet.Get(httpfetch.ResultType)
	require.True(t, ok)
	result := d.(httpfetch.Result)
	assert.Equal(t, server.URL, result.URL)
	assert.Equal(t, http.StatusTeapot, result.StatusCode)
	assert.Equal(t, int64(15), result.BodyBytes)
	assert.Equal(t, 1, res.Stats.Skipped, "seeded target placeholder is skipped")
}

func TestFetchRequiresSeed(t *testing.T) {
	eng := newEngine(t, nil)
	_, err := eng.Run(context.Background(), engine.RunRequest{
		Targets: []string{httpfetch.ResultType},
	})
	require.Error(t, err)
	assert.ErrorContains(t, err, "seed value")
}

func TestFetchRejectsNonStringTarget(t *testing.T) {
	eng := newEngine(t, nil)
	_, err := eng.Run(context.Background(), engine.RunRequest{
		Targets: []string{httpfetch.ResultType},
		Seed:    data.NewDataSet(data.NewValue(httpfetch.TargetType, 42)),
	})
	require.Error(t, err)
	assert.ErrorContains(t, err, "URL string")
}
