package service

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/phrazzld/tasklist/internal/service"

// startSpan starts a span on the global tracer provider, which is a no-op
// until tracing is initialised.
func startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return otel.Tracer(instrumentationName).Start(ctx, name, trace.WithAttributes(attrs...))
}

// endSpan records err on span, if any, and ends it. Expected errors such as
// not-found are recorded as events without marking the span failed.
func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		if !isExpected(err) {
			span.SetStatus(codes.Error, err.Error())
		}
	}
	span.End()
}
