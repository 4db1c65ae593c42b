// Package tracing provides OpenTelemetry tracing integration: a shared tracer
// and HTTP middleware that creates server spans and propagates trace context.
package tracing

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// tracer is the global tracer instance for the podcast-browser application.
var tracer = otel.Tracer("podcast-browser")

// GetTracer returns the global tracer for creating spans.
//
// Example usage:
//
//	ctx, span := tracing.GetTracer().Start(ctx, "operation-name")
//	defer span.End()
func GetTracer() trace.Tracer {
	return tracer
}
