// Package telemetry wires OpenTelemetry tracing for the a11y CLI and servers.
package telemetry

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
)

// Sampler names accepted in Config.Sampler
const (
	SamplerAlways = "always"
	SamplerNever  = "never"
	SamplerRatio  = "ratio"
)

// Config controls tracing. Nothing is exported unless Enabled is set.
type Config struct {
	Enabled        bool
	ServiceName    string
	ServiceVersion string
	Sampler        string
	Ratio          float64
	// Endpoint overrides OTEL_EXPORTER_OTLP_ENDPOINT when set
	Endpoint string
	// Sync exports every span as soon as it ends instead of batching.
	// One-shot commands exit right after a single check.
	Sync bool
}

// NewConfig returns a disabled configuration sampling every trace
func NewConfig() Config {
	return Config{
		ServiceName: DefaultTracerName,
		Sampler:     SamplerRatio,
		Ratio:       1,
	}
}

// Validate checks the sampler settings
func (c Config) Validate() error {
	switch c.Sampler {
	case SamplerAlways, SamplerNever:
		return nil
	case SamplerRatio:
		if c.Ratio < 0 || c.Ratio > 1 {
			return errors.Errorf("sampling ratio must be between 0 and 1, got %g", c.Ratio)
		}
		return nil
	default:
		return errors.Errorf("unknown sampler %q (expected always, never or ratio)", c.Sampler)
	}
}

func (c Config) sampler() trace.Sampler {
	switch c.Sampler {
	case SamplerNever:
		return trace.NeverSample()
	case SamplerRatio:
		return trace.ParentBased(trace.TraceIDRatioBased(c.Ratio))
	default:
		return trace.AlwaysSample()
	}
}

// ShutdownFunc flushes pending spans and stops the exporter
type ShutdownFunc func(context.Context) error

func noopShutdown(context.Context) error { return nil }

// InitTracer installs the global tracer provider and propagator. With
// tracing disabled it installs nothing and returns a no-op shutdown.
func InitTracer(ctx context.Context, cfg Config) (ShutdownFunc, error) {
	if !cfg.Enabled {
		return noopShutdown, nil
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = DefaultTracerName
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(cfg.ServiceName),
			semconv.ServiceVersion(cfg.ServiceVersion),
		),
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create resource")
	}

	var opts []otlptracehttp.Option
	if cfg.Endpoint != "" {
		opts = append(opts, otlptracehttp.WithEndpointURL(cfg.Endpoint))
	}
	exporter, err := otlptracehttp.New(ctx, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create trace exporter")
	}

	provider := trace.NewTracerProvider(
		trace.WithResource(res),
		trace.WithSampler(cfg.sampler()),
		trace.WithSpanProcessor(spanProcessor(exporter, cfg.Sync)),
	)

	otel.SetTracerProvider(provider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	// shutting the provider down also shuts down its processor and exporter
	return provider.Shutdown, nil
}

func spanProcessor(exporter trace.SpanExporter, sync bool) trace.SpanProcessor {
	if sync {
		return trace.NewSimpleSpanProcessor(exporter)
	}
	return trace.NewBatchSpanProcessor(exporter,
		trace.WithMaxExportBatchSize(256),
		trace.WithBatchTimeout(2*time.Second),
	)
}
