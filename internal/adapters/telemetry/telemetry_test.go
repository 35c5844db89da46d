package telemetry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.trai.ch/kiln/internal/adapters/telemetry"
	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/kiln/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestOTelTracer_StartAppliesAttributes(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tracer := telemetry.NewOTelTracer("test", recorder)

	_, span := tracer.Start(context.Background(), "locate",
		ports.WithAttribute("resource", "projects/blink"),
		ports.WithAttribute("strategy", domain.StrategyProject),
	)
	span.SetAttribute("exit_code", 2)
	span.SetAttribute("verbose", true)
	span.SetAttribute("command", []string{"pio", "run"})
	span.End()

	ended := recorder.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, "locate", ended[0].Name())

	attrs := map[attribute.Key]attribute.Value{}
	for _, kv := range ended[0].Attributes() {
		attrs[kv.Key] = kv.Value
	}
	assert.Equal(t, "projects/blink", attrs["resource"].AsString())
	assert.Equal(t, "project", attrs["strategy"].AsString())
	assert.Equal(t, int64(2), attrs["exit_code"].AsInt64())
	assert.True(t, attrs["verbose"].AsBool())
	assert.Equal(t, []string{"pio", "run"}, attrs["command"].AsStringSlice())

	require.NoError(t, tracer.Shutdown(context.Background()))
}

func TestOTelTracer_RecordErrorSetsStatus(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tracer := telemetry.NewOTelTracer("test", recorder)

	_, span := tracer.Start(context.Background(), "run")
	span.RecordError(errors.New("exit status 1"))
	span.RecordError(nil)
	span.End()

	ended := recorder.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, codes.Error, ended[0].Status().Code)
	assert.Equal(t, "exit status 1", ended[0].Status().Description)
}

func TestOTelTracer_ChildSpansShareTrace(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tracer := telemetry.NewOTelTracer("test", recorder)

	ctx, root := tracer.Start(context.Background(), "build")
	_, child := tracer.Start(ctx, "run")
	child.End()
	root.End()

	ended := recorder.Ended()
	require.Len(t, ended, 2)
	assert.Equal(t, ended[1].SpanContext().TraceID(), ended[0].SpanContext().TraceID())
	assert.Equal(t, ended[1].SpanContext().SpanID(), ended[0].Parent().SpanID())
}

func TestBridge_OnEndObservesStage(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockMetrics := mocks.NewMockMetrics(ctrl)

	gomock.InOrder(
		mockMetrics.EXPECT().ObserveStage("toolchain", gomock.Any(), false).Times(1),
		mockMetrics.EXPECT().ObserveStage("run", gomock.Any(), true).
			Do(func(_ string, d time.Duration, _ bool) {
				assert.GreaterOrEqual(t, d, time.Duration(0))
			}).Times(1),
	)

	tracer := telemetry.NewOTelTracer("test", telemetry.NewBridge(mockMetrics))

	_, ok := tracer.Start(context.Background(), "toolchain")
	ok.End()

	_, failed := tracer.Start(context.Background(), "run")
	failed.RecordError(errors.New("boom"))
	failed.End()

	require.NoError(t, tracer.Shutdown(context.Background()))
}

func TestBridge_NilMetrics(t *testing.T) {
	tracer := telemetry.NewOTelTracer("test", telemetry.NewBridge(nil))

	assert.NotPanics(t, func() {
		_, span := tracer.Start(context.Background(), "run")
		span.End()
	})
}

func TestNoOpTracer(t *testing.T) {
	tracer := telemetry.NewNoOpTracer()
	ctx := context.Background()

	gotCtx, span := tracer.Start(ctx, "anything", ports.WithAttribute("k", "v"))
	assert.Equal(t, ctx, gotCtx)

	assert.NotPanics(t, func() {
		span.SetAttribute("k", 1)
		span.RecordError(errors.New("ignored"))
		span.End()
	})
	assert.NoError(t, tracer.Shutdown(ctx))
}
