package trace

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"equity-intel/internal/logger"
)

// StartSpan starts a span on the tracer set up by logger.Init. When tracing is
// disabled the span from ctx (a no-op span) is returned.
func StartSpan(ctx context.Context, spanName string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	if !logger.IsTracingEnabled() {
		return ctx, trace.SpanFromContext(ctx)
	}
	return otel.Tracer("equity-intel").Start(ctx, spanName, opts...)
}

func Enabled() bool {
	return logger.IsTracingEnabled()
}

// GetTraceFields returns a fresh field map seeded with trace/span ids when the
// context carries a valid span.
func GetTraceFields(ctx context.Context) map[string]any {
	fields := make(map[string]any)
	if !Enabled() {
		return fields
	}
	span := trace.SpanFromContext(ctx)
	if !span.SpanContext().IsValid() {
		return fields
	}
	fields["trace_id"] = span.SpanContext().TraceID().String()
	fields["span_id"] = span.SpanContext().SpanID().String()
	return fields
}
