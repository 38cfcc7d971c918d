package telemetry

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func restoreGlobalProvider(t *testing.T) {
	t.Helper()
	prev := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(prev) })
}

func TestEnabled(t *testing.T) {
	t.Setenv(EndpointEnv, "")
	assert.False(t, Enabled(false))
	assert.True(t, Enabled(true))

	t.Setenv(EndpointEnv, "http://localhost:4318")
	assert.True(t, Enabled(false))
}

func TestSetupDisabled(t *testing.T) {
	restoreGlobalProvider(t)
	before := otel.GetTracerProvider()

	shutdown, err := Setup(context.Background(), false)
	require.NoError(t, err)
	require.NotNil(t, shutdown)

	assert.Equal(t, before, otel.GetTracerProvider())
	assert.NoError(t, shutdown(context.Background()))
}

func TestSetupExportsSpans(t *testing.T) {
	restoreGlobalProvider(t)

	var exports atomic.Int32
	var path atomic.Value
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.Copy(io.Discard, r.Body)
		path.Store(r.URL.Path)
		exports.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()
	t.Setenv(EndpointEnv, server.URL)

	shutdown, err := Setup(context.Background(), Enabled(false))
	require.NoError(t, err)

	_, ok := otel.GetTracerProvider().(*sdktrace.TracerProvider)
	require.True(t, ok, "global provider should be the SDK provider")

	_, span := otel.Tracer("runway/test").Start(context.Background(), "completion")
	span.End()

	require.NoError(t, shutdown(context.Background()))
	assert.Equal(t, int32(1), exports.Load())
	assert.Equal(t, "/v1/traces", path.Load())
}
