package deps

import (
	"context"
	"log/slog"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.uber.org/fx"
)

// OTelSDK wires up the OpenTelemetry tracer provider.
//
// Traces are exported over OTLP/HTTP when OTEL_EXPORTER_OTLP_ENDPOINT is
// set, or to stdout when OTEL_TRACE_STDOUT=true. Without either, tracing
// stays a no-op.
func OTelSDK(lifecycle fx.Lifecycle) error {
	ctx := context.Background()

	var (
		exporter sdktrace.SpanExporter
		err      error
	)
	switch {
	case os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT") != "":
		exporter, err = otlptracehttp.New(ctx)
	case os.Getenv("OTEL_TRACE_STDOUT") == "true":
		exporter, err = stdouttrace.New()
	default:
		return nil
	}
	if err != nil {
		slog.Error("error creating trace exporter", "error", err)
		return err
	}

	res, err := resource.Merge(resource.Default(), resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName("quirzy-backend"),
	))
	if err != nil {
		slog.Error("error building otel resource", "error", err)
		return err
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)

	otel.SetTracerProvider(provider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	lifecycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return provider.Shutdown(ctx)
		},
	})

	return nil
}
