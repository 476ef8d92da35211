// Package tracing installs the OpenTelemetry tracer provider used by the
// HTTP middleware and the services.
package tracing

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/phrazzld/tasklist/internal/config"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// ShutdownFunc flushes pending spans and releases the exporter.
type ShutdownFunc func(context.Context) error

func noopShutdown(context.Context) error { return nil }

// Init installs a global tracer provider according to cfg and returns its
// shutdown function. When tracing is disabled nothing is installed and the
// returned shutdown does nothing.
func Init(ctx context.Context, cfg config.TracingConfig, log *slog.Logger) (ShutdownFunc, error) {
	return initWithWriter(ctx, cfg, log, os.Stdout)
}

func initWithWriter(ctx context.Context, cfg config.TracingConfig, log *slog.Logger, w io.Writer) (ShutdownFunc, error) {
	if log == nil {
		log = slog.Default()
	}
	if !cfg.Enabled {
		log.Debug("tracing disabled")
		return noopShutdown, nil
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(semconv.ServiceNameKey.String(cfg.ServiceName)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build tracing resource: %w", err)
	}

	exporter, err := newExporter(ctx, cfg, w)
	if err != nil {
		return nil, fmt.Errorf("failed to create span exporter: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter, sdktrace.WithBatchTimeout(5*time.Second)),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(cfg.SampleRatio))),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	exporterName := "stdout"
	if cfg.Endpoint != "" {
		exporterName = "otlp"
	}
	log.Info("tracing initialized",
		slog.String("service", cfg.ServiceName),
		slog.String("exporter", exporterName),
		slog.Float64("sample_ratio", cfg.SampleRatio))

	return tp.Shutdown, nil
}

// newExporter returns an OTLP/HTTP exporter when an endpoint is configured
// and a stdout exporter otherwise.
func newExporter(ctx context.Context, cfg config.TracingConfig, w io.Writer) (sdktrace.SpanExporter, error) {
	if cfg.Endpoint != "" {
		opts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(cfg.Endpoint)}
		if cfg.Insecure {
			opts = append(opts, otlptracehttp.WithInsecure())
		}
		return otlptracehttp.New(ctx, opts...)
	}
	return stdouttrace.New(stdouttrace.WithWriter(w))
}
