package tracer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace/noop"
)

func TestNoopTracerReturnsContextUnchanged(t *testing.T) {
	ctx := context.Background()
	got, span := NewNoop().Start(ctx, "screening.preregistration", String("tenant_id", "t"))

	assert.Equal(t, ctx, got)
	require.NotNil(t, span)
	span.SetAttributes(Bool("allowed", true))
	span.End(errors.New("ignored"))
}

func TestOTelTracerStartsSpans(t *testing.T) {
	tr := NewOTel(WithTracerProvider(noop.NewTracerProvider()))

	_, span := tr.Start(context.Background(), "screening.blacklist", Int("matches", 2))
	require.NotNil(t, span)
	span.SetAttributes(Float64("confidence", 0.9))
	span.End(errors.New("store down"))
}

func TestToOTelAttributes(t *testing.T) {
	got := toOTelAttributes([]Attribute{
		String("risk", "BLOCK"),
		Bool("allowed", false),
		Int("candidates", 3),
		Float64("score", 0.95),
		{Key: "skipped", Value: struct{}{}},
	})

	assert.Equal(t, []attribute.KeyValue{
		attribute.String("risk", "BLOCK"),
		attribute.Bool("allowed", false),
		attribute.Int("candidates", 3),
		attribute.Float64("score", 0.95),
	}, got)
	assert.Nil(t, toOTelAttributes(nil))
}
