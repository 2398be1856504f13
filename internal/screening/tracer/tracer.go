// Package tracer is the span abstraction used by screening. Services depend on
// Tracer only; the OpenTelemetry adapter is chosen at wiring time.
package tracer

import "context"

// Span is one traced operation. End must be called exactly once.
type Span interface {
	// End finishes the span, marking it failed when err is non-nil.
	End(err error)
	SetAttributes(attrs ...Attribute)
}

// Tracer starts spans. Implementations must be safe for concurrent use.
type Tracer interface {
	Start(ctx context.Context, name string, attrs ...Attribute) (context.Context, Span)
}

type Attribute struct {
	Key   string
	Value any
}

func String(key, value string) Attribute {
	return Attribute{Key: key, Value: value}
}

func Bool(key string, value bool) Attribute {
	return Attribute{Key: key, Value: value}
}

func Int(key string, value int) Attribute {
	return Attribute{Key: key, Value: value}
}

func Float64(key string, value float64) Attribute {
	return Attribute{Key: key, Value: value}
}
