package tracing_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"

	"github.com/ygrebnov/syncbridge"
	"github.com/ygrebnov/syncbridge/tracing"
)

// The global tracer provider can only be installed once per process, so a
// single test exercises the whole surface against one shared buffer.
func TestSpawn_EmitsSpans(t *testing.T) {
	var buf bytes.Buffer
	exporter, err := stdouttrace.New(stdouttrace.WithWriter(&buf))
	require.NoError(t, err)
	require.NoError(t, tracing.InitWithExporter("syncbridge-test", "0.0.1", exporter))
	require.NoError(t, tracing.InitWithExporter("ignored", "0.0.2", exporter), "second init is a no-op")

	v, err := tracing.Spawn(context.Background(), "bridge.fetch", func(ctx context.Context) (int, error) {
		return syncbridge.AwaitOnly(ctx, syncbridge.Resolved(2))
	})
	require.NoError(t, err)
	require.Equal(t, 2, v)

	out := buf.String()
	require.Contains(t, out, "bridge.fetch")
	require.Contains(t, out, "syncbridge.id")
	require.Contains(t, out, "syncbridge-test")

	buf.Reset()
	boom := errors.New("boom")
	_, err = tracing.Spawn(context.Background(), "bridge.broken", func(_ context.Context) (int, error) {
		return 0, boom
	})
	require.ErrorIs(t, err, boom, "tracing must pass errors through unchanged")
	require.Contains(t, buf.String(), "bridge.broken")
	require.Contains(t, buf.String(), "boom")
}
