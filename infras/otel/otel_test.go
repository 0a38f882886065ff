package otel_test

import (
	"context"
	"errors"
	"shareit/config"
	"shareit/infras/otel"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func newRecordedProvider(t *testing.T) (*otel.Provider, *tracetest.SpanRecorder) {
	t.Helper()

	recorder := tracetest.NewSpanRecorder()
	cfg := &config.Config{}
	cfg.App.Name = "shareit-test"

	return otel.NewProvider(cfg, trace.WithSpanProcessor(recorder)), recorder
}

func TestScope_RecordsSpanAndAttributes(t *testing.T) {
	provider, recorder := newRecordedProvider(t)

	_, scope := provider.NewScope(context.Background(), "service", "service.Decide")
	scope.SetAttributes(map[string]any{
		"booking.id": "b-1",
		"approved":   true,
		"page":       2,
		"now":        time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	scope.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "service.Decide", spans[0].Name())
	assert.Len(t, spans[0].Attributes(), 4)
	assert.Equal(t, codes.Unset, spans[0].Status().Code)

	require.NoError(t, provider.Shutdown(context.Background()))
}

func TestScope_TraceIfError(t *testing.T) {
	provider, recorder := newRecordedProvider(t)

	_, ok := provider.NewScope(context.Background(), "service", "ok")
	ok.TraceIfError(nil)
	ok.End()

	_, failed := provider.NewScope(context.Background(), "service", "failed")
	failed.TraceIfError(errors.New("boom"))
	failed.End()

	spans := recorder.Ended()
	require.Len(t, spans, 2)
	assert.Equal(t, codes.Unset, spans[0].Status().Code)
	assert.Equal(t, codes.Error, spans[1].Status().Code)
	assert.Equal(t, "boom", spans[1].Status().Description)
}
