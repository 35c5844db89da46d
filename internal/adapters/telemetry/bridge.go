package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/kiln/internal/core/ports"
)

var _ sdktrace.SpanProcessor = (*Bridge)(nil)

// Bridge implements sdktrace.SpanProcessor to forward finished stage spans to metrics.
type Bridge struct {
	metrics ports.Metrics
}

// NewBridge returns a new Bridge.
func NewBridge(metrics ports.Metrics) *Bridge {
	return &Bridge{metrics: metrics}
}

// OnStart is called when a span starts.
func (b *Bridge) OnStart(_ context.Context, _ sdktrace.ReadWriteSpan) {}

// OnEnd records the duration and status of the finished span.
func (b *Bridge) OnEnd(s sdktrace.ReadOnlySpan) {
	if b.metrics == nil {
		return
	}

	if !s.SpanContext().IsValid() {
		return
	}

	b.metrics.ObserveStage(s.Name(), s.EndTime().Sub(s.StartTime()), s.Status().Code == codes.Error)
}

// ForceFlush does nothing.
func (b *Bridge) ForceFlush(_ context.Context) error {
	return nil
}

// Shutdown does nothing.
func (b *Bridge) Shutdown(_ context.Context) error {
	return nil
}
