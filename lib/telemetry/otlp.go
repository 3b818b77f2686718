package telemetry

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
)

const exportTimeout = time.Second * 3

// transport reports which exporter a connection config asks for, grpc wins
// when both endpoints are set. An empty result disables exporting.
func (c OtlpConnConfig) transport() (kind, endpoint string) {
	switch {
	case c.GrpcEndpoint != "":
		return "grpc", c.GrpcEndpoint
	case c.HttpEndpoint != "":
		return "http", c.HttpEndpoint
	}
	return "", ""
}

func newTraceProvider(ctx context.Context, r *resource.Resource, config Config) (*trace.TracerProvider, error) {
	opts := []trace.TracerProviderOption{trace.WithResource(r)}

	ctx, cancel := context.WithTimeout(ctx, exportTimeout)
	defer cancel()

	conn := config.Otlp.Traces
	kind, endpoint := conn.transport()

	var (
		exporter trace.SpanExporter
		err      error
	)
	switch kind {
	case "grpc":
		exporter, err = otlptracegrpc.New(
			ctx,
			otlptracegrpc.WithEndpointURL(endpoint),
			otlptracegrpc.WithHeaders(conn.Headers),
		)
	case "http":
		exporter, err = otlptracehttp.New(
			ctx,
			otlptracehttp.WithEndpointURL(endpoint),
			otlptracehttp.WithHeaders(conn.Headers),
		)
	default:
		slog.Debug("no trace endpoint configured, spans are not exported")
		return trace.NewTracerProvider(opts...), nil
	}
	if err != nil {
		return nil, err
	}

	slog.Info("trace exporter initialized", "type", kind, "endpoint", endpoint)
	opts = append(opts, trace.WithBatcher(exporter))
	return trace.NewTracerProvider(opts...), nil
}

func newMetricProvider(ctx context.Context, r *resource.Resource, config Config) (*metric.MeterProvider, error) {
	opts := []metric.Option{metric.WithResource(r)}

	ctx, cancel := context.WithTimeout(ctx, exportTimeout)
	defer cancel()

	conn := config.Otlp.Metrics
	kind, endpoint := conn.transport()

	var (
		exporter metric.Exporter
		err      error
	)
	switch kind {
	case "grpc":
		exporter, err = otlpmetricgrpc.New(
			ctx,
			otlpmetricgrpc.WithEndpointURL(endpoint),
			otlpmetricgrpc.WithHeaders(conn.Headers),
		)
	case "http":
		exporter, err = otlpmetrichttp.New(
			ctx,
			otlpmetrichttp.WithEndpointURL(endpoint),
			otlpmetrichttp.WithHeaders(conn.Headers),
		)
	default:
		slog.Debug("no metric endpoint configured, metrics are not exported")
		return metric.NewMeterProvider(opts...), nil
	}
	if err != nil {
		return nil, err
	}

	slog.Info("metric exporter initialized", "type", kind, "endpoint", endpoint)
	opts = append(opts, metric.WithReader(
		metric.NewPeriodicReader(exporter, metric.WithInterval(time.Second*5)),
	))
	return metric.NewMeterProvider(opts...), nil
}
