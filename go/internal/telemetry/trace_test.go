package telemetry

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisabledTracing(t *testing.T) {
	require.NoError(t, Init(Config{}))
	assert.False(t, Enabled())

	ctx, span := StartSpan(context.Background(), "noop")
	assert.False(t, span.SpanContext().IsValid())
	End(span, errors.New("ignored"))

	_, _, ok := TraceFields(ctx)
	assert.False(t, ok)
	assert.NoError(t, Shutdown(context.Background()))
}

func TestEnabledTracing(t *testing.T) {
	require.NoError(t, Init(Config{Enabled: true, ServiceName: "trace-test"}))
	t.Cleanup(func() {
		require.NoError(t, Shutdown(context.Background()))
		require.NoError(t, Init(Config{}))
	})
	assert.True(t, Enabled())

	ctx, span := StartSpan(context.Background(), "parent")
	defer End(span, nil)

	traceID, spanID, ok := TraceFields(ctx)
	require.True(t, ok)
	assert.Equal(t, span.SpanContext().TraceID().String(), traceID)
	assert.Equal(t, span.SpanContext().SpanID().String(), spanID)

	childCtx, child := StartSpan(ctx, "child")
	childTrace, _, ok := TraceFields(childCtx)
	require.True(t, ok)
	assert.Equal(t, traceID, childTrace)
	End(child, errors.New("boom"))
}
