// Package telemetry installs the global OpenTelemetry tracer provider.
package telemetry

import (
	"context"
	"fmt"
	"os"

	"github.com/longkey1/runway/internal/version"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// EndpointEnv names the standard OTLP endpoint variable. Setting it turns
// tracing on even when the trace key is false.
const EndpointEnv = "OTEL_EXPORTER_OTLP_ENDPOINT"

// ServiceName is reported as the service.name resource attribute
const ServiceName = "runway"

// Shutdown flushes buffered spans and stops the exporter
type Shutdown func(context.Context) error

func noopShutdown(context.Context) error { return nil }

// Enabled reports whether spans should be exported
func Enabled(trace bool) bool {
	return trace || os.Getenv(EndpointEnv) != ""
}

// Setup installs an OTLP/HTTP tracer provider as the global provider when
// enabled. The exporter reads the OTEL_EXPORTER_OTLP_* variables; without an
// endpoint it sends plain HTTP to localhost:4318.
func Setup(ctx context.Context, enabled bool) (Shutdown, error) {
	if !enabled {
		return noopShutdown, nil
	}

	var opts []otlptracehttp.Option
	if os.Getenv(EndpointEnv) == "" {
		opts = append(opts, otlptracehttp.WithInsecure())
	}
	exporter, err := otlptracehttp.New(ctx, opts...)
	if err != nil {
		return noopShutdown, fmt.Errorf("error creating OTLP exporter: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(resource.NewWithAttributes(
			"",
			attribute.String("service.name", ServiceName),
			attribute.String("service.version", version.Short()),
		)),
	)
	otel.SetTracerProvider(tp)

	return tp.Shutdown, nil
}
