package telemetry

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestInitTracerDisabled(t *testing.T) {
	shutdown, err := InitTracer(context.Background(), NewConfig())
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(context.Background()))
}

func TestInitTracerInvalidSampler(t *testing.T) {
	cfg := NewConfig()
	cfg.Enabled = true
	cfg.Sampler = "sometimes"

	_, err := InitTracer(context.Background(), cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown sampler "sometimes"`)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name          string
		sampler       string
		ratio         float64
		expectedError string
	}{
		{name: "always", sampler: SamplerAlways},
		{name: "never ignores ratio", sampler: SamplerNever, ratio: 5},
		{name: "ratio", sampler: SamplerRatio, ratio: 0.25},
		{name: "ratio bounds", sampler: SamplerRatio, ratio: 1},
		{name: "ratio above one", sampler: SamplerRatio, ratio: 1.5, expectedError: "sampling ratio must be between 0 and 1, got 1.5"},
		{name: "negative ratio", sampler: SamplerRatio, ratio: -0.1, expectedError: "sampling ratio must be between 0 and 1"},
		{name: "empty sampler", sampler: "", expectedError: `unknown sampler ""`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			cfg.Sampler = tt.sampler
			cfg.Ratio = tt.ratio

			err := cfg.Validate()
			if tt.expectedError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedError)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSampler(t *testing.T) {
	tests := []struct {
		sampler  string
		contains string
	}{
		{SamplerAlways, "AlwaysOnSampler"},
		{SamplerNever, "AlwaysOffSampler"},
		{SamplerRatio, "ParentBased{root:TraceIDRatioBased{0.5}"},
	}

	for _, tt := range tests {
		t.Run(tt.sampler, func(t *testing.T) {
			cfg := Config{Sampler: tt.sampler, Ratio: 0.5}
			assert.Contains(t, cfg.sampler().Description(), tt.contains)
		})
	}
}

func TestSpanProcessor(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(spanProcessor(exporter, true)))

	_, span := provider.Tracer("test").Start(context.Background(), "tools.run_tool.contrast")
	span.End()

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "tools.run_tool.contrast", spans[0].Name)
	require.NoError(t, provider.Shutdown(context.Background()))
}

func withRecorder(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	previous := otel.GetTracerProvider()
	otel.SetTracerProvider(provider)
	t.Cleanup(func() { otel.SetTracerProvider(previous) })
	return recorder
}

func TestWithSpan(t *testing.T) {
	recorder := withRecorder(t)

	err := WithSpan(context.Background(), "skills.aggregate", func(ctx context.Context) error {
		SetAttributes(ctx, attribute.Int("skills.count", 3))
		return nil
	})
	require.NoError(t, err)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "skills.aggregate", spans[0].Name())
	assert.Equal(t, codes.Ok, spans[0].Status().Code)
	assert.Contains(t, spans[0].Attributes(), attribute.Int("skills.count", 3))
}

func TestWithSpanError(t *testing.T) {
	recorder := withRecorder(t)

	boom := errors.New("index drift")
	err := WithSpan(context.Background(), "skills.check", func(context.Context) error { return boom })
	assert.Equal(t, boom, err)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Equal(t, "index drift", spans[0].Status().Description)
}
