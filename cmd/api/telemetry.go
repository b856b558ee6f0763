package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/runtime"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
)

const (
	_collectorEndpointEnv = "POSBRIDGE_SERVER_OTELCOL_ENDPOINT"
	_defaultEndpoint      = "localhost:4317"
	_exportInterval       = 30 * time.Second
	_exportTimeout        = 35 * time.Second
	_runtimeReadInterval  = time.Minute
	_shutdownTimeout      = 10 * time.Second
)

type telemetryOptions struct {
	ServiceName string
	Version     string
}

// telemetry owns the global tracer and meter providers. Both export to the
// same OTLP collector.
type telemetry struct {
	tracer *trace.TracerProvider
	meter  *metric.MeterProvider
}

func startTelemetry(ctx context.Context, opts telemetryOptions) (*telemetry, error) {
	endpoint := _defaultEndpoint
	if value, ok := os.LookupEnv(_collectorEndpointEnv); ok {
		endpoint = value
	}
	slog.Info("starting telemetry", slog.String("collector", endpoint))

	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceNameKey.String(opts.ServiceName),
		semconv.ServiceVersionKey.String(opts.Version),
	)

	spans, err := otlptracegrpc.New(ctx,
		otlptracegrpc.WithEndpoint(endpoint),
		otlptracegrpc.WithInsecure())
	if err != nil {
		return nil, err
	}

	metrics, err := otlpmetricgrpc.New(ctx,
		otlpmetricgrpc.WithEndpoint(endpoint),
		otlpmetricgrpc.WithInsecure())
	if err != nil {
		return nil, err
	}

	t := &telemetry{
		tracer: trace.NewTracerProvider(
			trace.WithBatcher(spans),
			trace.WithResource(res),
		),
		// histograms declare their own buckets where they are created
		meter: metric.NewMeterProvider(
			metric.WithResource(res),
			metric.WithReader(metric.NewPeriodicReader(metrics,
				metric.WithInterval(_exportInterval),
				metric.WithTimeout(_exportTimeout))),
		),
	}
	otel.SetTracerProvider(t.tracer)
	otel.SetMeterProvider(t.meter)

	if err := runtime.Start(runtime.WithMinimumReadMemStatsInterval(_runtimeReadInterval)); err != nil {
		return nil, err
	}

	return t, nil
}

func (t *telemetry) shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), _shutdownTimeout)
	defer cancel()

	err := errors.Join(t.meter.Shutdown(ctx), t.tracer.Shutdown(ctx))
	if err != nil {
		slog.Error("telemetry shutdown", slog.String("error", err.Error()))
	}
}
