package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"

	"github.com/chaizz/lumen-Park/internal/config"
)

func TestNormalizeOTLPEndpoint(t *testing.T) {
	got, err := normalizeOTLPEndpoint("http://collector:4317")
	require.NoError(t, err)
	require.Equal(t, "collector:4317", got)

	got, err = normalizeOTLPEndpoint("collector:4317")
	require.NoError(t, err)
	require.Equal(t, "collector:4317", got)

	_, err = normalizeOTLPEndpoint("https://")
	require.Error(t, err)
}

func TestInitWithoutEndpoint(t *testing.T) {
	shutdown, err := Init(context.Background(), &config.Config{})
	require.NoError(t, err)
	require.NoError(t, shutdown(context.Background()))
	require.ElementsMatch(t, []string{"traceparent", "tracestate", "baggage"}, otel.GetTextMapPropagator().Fields())
}
