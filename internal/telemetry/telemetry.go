// Package telemetry installs the process-wide OpenTelemetry tracer provider
// and trace context propagator.
package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Supported values for Config.Exporter
const (
	ExporterNone   = "none"
	ExporterStdout = "stdout"
)

// Config selects how spans are exported
type Config struct {
	ServiceName    string
	ServiceVersion string
	Exporter       string
}

// Setup registers a W3C trace context propagator and an SDK tracer provider.
// Spans are always created so trace context flows to upstream calls; they are
// only written out when an exporter is selected. The returned function flushes
// and stops the provider.
func Setup(cfg Config) (func(context.Context) error, error) {
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	opts := []sdktrace.TracerProviderOption{
		sdktrace.WithResource(resource.NewSchemaless(
			attribute.String("service.name", cfg.ServiceName),
			attribute.String("service.version", cfg.ServiceVersion),
		)),
	}

	switch cfg.Exporter {
	case "", ExporterNone:
	case ExporterStdout:
		exporter, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
		if err != nil {
			return nil, fmt.Errorf("creating stdout exporter: %w", err)
		}
		opts = append(opts, sdktrace.WithSyncer(exporter))
	default:
		return nil, fmt.Errorf("unknown trace exporter %q", cfg.Exporter)
	}

	provider := sdktrace.NewTracerProvider(opts...)
	otel.SetTracerProvider(provider)

	return provider.Shutdown, nil
}
