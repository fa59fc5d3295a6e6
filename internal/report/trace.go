package report

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Trace records each invocation as a span whose timestamps match the call
type Trace struct {
	tracer trace.Tracer
}

// NewTrace creates a Trace reporter
func NewTrace(tracer trace.Tracer) *Trace {
	return &Trace{tracer: tracer}
}

// Report implements Reporter
func (t *Trace) Report(inv Invocation) {
	_, span := t.tracer.Start(context.Background(), inv.Name,
		trace.WithTimestamp(inv.Start),
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("code.function", inv.Name),
			attribute.Float64("calltimer.elapsed_seconds", inv.Elapsed().Seconds()),
		),
	)
	span.End(trace.WithTimestamp(inv.End))
}
