package sentinel

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Grayjou/typesentinel/contexts"
)

// contextKey is a unique type for storing values in context to avoid collisions.
type contextKey string

// TracerKey is the context key used to store the OpenTelemetry tracer.
const TracerKey contextKey = "tracer"

// WithTracer stores an OpenTelemetry tracer in the context. When a tracer is
// present, every guarded call records its validation pass as a span. Without
// one, validation runs untraced; there is no fallback to a global tracer.
//
// Example:
//
//	ctx = sentinel.WithTracer(ctx, otel.Tracer("my-service"))
func WithTracer(ctx context.Context, tracer trace.Tracer) context.Context {
	return contexts.WithValue[contextKey, trace.Tracer](ctx, TracerKey, tracer)
}

// TracerFromContext retrieves the OpenTelemetry tracer from the context.
// Returns the tracer and true if found, or nil and false if not present.
func TracerFromContext(ctx context.Context) (trace.Tracer, bool) {
	return contexts.GetValue[contextKey, trace.Tracer](ctx, TracerKey)
}

// startValidateSpan opens the validation span for one guarded call, or
// returns nil when the context carries no tracer. finishValidateSpan accepts
// the nil.
func startValidateSpan(ctx context.Context, g *Guard) trace.Span {
	tracer, ok := TracerFromContext(ctx)
	if !ok {
		return nil
	}

	_, span := tracer.Start(ctx, "typesentinel.validate",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("function", g.name),
			attribute.Int("checks", len(g.checks)),
		),
	)

	return span
}

func finishValidateSpan(span trace.Span, failed int) {
	if span == nil {
		return
	}

	span.SetAttributes(attribute.Int("failed", failed))

	if failed > 0 {
		span.SetStatus(codes.Error, "arguments failed type checks")
	} else {
		span.SetStatus(codes.Ok, "")
	}

	span.End()
}
