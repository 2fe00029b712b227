package observability

import (
	"context"
	"fmt"
	"time"

	"craft-assistant/internal/common/config"

	promclient "github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/jaeger"
	"go.opentelemetry.io/otel/exporters/prometheus"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"
)

// Observability owns the OpenTelemetry meter and tracer providers.
type Observability struct {
	meterProvider  *metric.MeterProvider
	tracerProvider *sdktrace.TracerProvider
	tracer         trace.Tracer
	resolutions    otelmetric.Int64Counter
	duration       otelmetric.Float64Histogram
}

// New exports metrics through the default Prometheus registry and, when
// JaegerEndpoint is set, spans to Jaeger.
func New(cfg config.ObservabilityConfig) (*Observability, error) {
	return NewWithRegisterer(cfg, promclient.DefaultRegisterer)
}

func NewWithRegisterer(cfg config.ObservabilityConfig, reg promclient.Registerer) (*Observability, error) {
	exporter, err := prometheus.New(prometheus.WithRegisterer(reg))
	if err != nil {
		return nil, fmt.Errorf("create prometheus exporter: %w", err)
	}

	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceNameKey.String(cfg.ServiceName),
	)

	meterProvider := metric.NewMeterProvider(
		metric.WithReader(exporter),
		metric.WithResource(res),
	)
	otel.SetMeterProvider(meterProvider)

	tpOpts := []sdktrace.TracerProviderOption{sdktrace.WithResource(res)}
	if cfg.JaegerEndpoint != "" {
		spanExporter, err := jaeger.New(jaeger.WithCollectorEndpoint(jaeger.WithEndpoint(cfg.JaegerEndpoint)))
		if err != nil {
			return nil, fmt.Errorf("create jaeger exporter: %w", err)
		}
		tpOpts = append(tpOpts, sdktrace.WithBatcher(spanExporter))
	}
	tracerProvider := sdktrace.NewTracerProvider(tpOpts...)
	otel.SetTracerProvider(tracerProvider)

	meter := meterProvider.Meter(cfg.ServiceName)

	resolutions, err := meter.Int64Counter(
		"assistant_pipeline_runs",
		otelmetric.WithDescription("Number of pipeline runs by winning resolver"),
	)
	if err != nil {
		return nil, fmt.Errorf("create resolutions counter: %w", err)
	}

	duration, err := meter.Float64Histogram(
		"assistant_pipeline_latency",
		otelmetric.WithDescription("Pipeline run latency"),
		otelmetric.WithUnit("ms"),
	)
	if err != nil {
		return nil, fmt.Errorf("create duration histogram: %w", err)
	}

	return &Observability{
		meterProvider:  meterProvider,
		tracerProvider: tracerProvider,
		tracer:         tracerProvider.Tracer(cfg.ServiceName),
		resolutions:    resolutions,
		duration:       duration,
	}, nil
}

// Tracer returns the tracer spans for the resolution pipeline are started on.
func (o *Observability) Tracer() trace.Tracer {
	return o.tracer
}

func (o *Observability) RecordResolution(ctx context.Context, resolver, status string, elapsed time.Duration) {
	attrs := otelmetric.WithAttributes(
		attribute.String("resolver", resolver),
		attribute.String("status", status),
	)
	o.resolutions.Add(ctx, 1, attrs)
	o.duration.Record(ctx, float64(elapsed.Milliseconds()), attrs)
}

func (o *Observability) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var firstErr error
	if err := o.tracerProvider.Shutdown(ctx); err != nil {
		firstErr = err
	}
	if err := o.meterProvider.Shutdown(ctx); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}
