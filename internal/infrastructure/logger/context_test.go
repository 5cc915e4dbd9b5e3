package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observedLogger(level zapcore.Level) (*zap.Logger, *observer.ObservedLogs) {
	core, recorded := observer.New(level)
	return zap.New(core), recorded
}

func TestWithContext_RoundTrip(t *testing.T) {
	logger, recorded := observedLogger(zapcore.InfoLevel)

	ctx := WithContext(context.Background(), logger)
	FromContext(ctx).Info("resolved channel price")

	assert.Equal(t, 1, recorded.Len())
	assert.Equal(t, "resolved channel price", recorded.All()[0].Message)
}

func TestFromContext_MissingOrWrongType(t *testing.T) {
	assert.NotPanics(t, func() {
		FromContext(context.Background()).Info("dropped")

		ctx := context.WithValue(context.Background(), LoggerKey, "not a logger")
		FromContext(ctx).Warn("also dropped")
	})
}

func TestWithRestaurantID(t *testing.T) {
	logger, recorded := observedLogger(zapcore.InfoLevel)

	ctx, scoped := WithRestaurantID(context.Background(), logger, "rest-456")
	scoped.Info("menu updated")

	assert.Equal(t, "rest-456", GetRestaurantID(ctx))
	assert.Equal(t, "rest-456", recorded.All()[0].ContextMap()["restaurant_id"])
}

func TestWithUserID(t *testing.T) {
	logger, recorded := observedLogger(zapcore.InfoLevel)

	ctx, scoped := WithUserID(context.Background(), logger, "staff-789")
	scoped.Info("price override saved")

	assert.Equal(t, "staff-789", GetUserID(ctx))
	assert.Equal(t, "staff-789", recorded.All()[0].ContextMap()["user_id"])
}

func TestScopedLoggerReattachedToContext(t *testing.T) {
	logger, recorded := observedLogger(zapcore.InfoLevel)

	ctx, _ := WithRestaurantID(context.Background(), logger, "rest-1")
	ctx, _ = WithUserID(ctx, FromContext(ctx), "staff-1")

	// downstream callers only see the context, and the logger they pull out
	// of it must already carry both fields
	FromContext(ctx).Info("variant archived")

	fields := recorded.All()[0].ContextMap()
	assert.Equal(t, "rest-1", fields["restaurant_id"])
	assert.Equal(t, "staff-1", fields["user_id"])
}

func TestContextGetters_Empty(t *testing.T) {
	ctx := context.Background()

	assert.Empty(t, GetRequestID(ctx))
	assert.Empty(t, GetRestaurantID(ctx))
	assert.Empty(t, GetUserID(ctx))
}

func TestGetRequestID(t *testing.T) {
	ctx := context.WithValue(context.Background(), RequestIDKey, "req-42")
	assert.Equal(t, "req-42", GetRequestID(ctx))
}

func TestContextKeys_Distinct(t *testing.T) {
	keys := []contextKey{LoggerKey, RequestIDKey, RestaurantIDKey, UserIDKey}
	seen := make(map[contextKey]bool, len(keys))
	for _, key := range keys {
		assert.False(t, seen[key], "duplicate context key %q", key)
		seen[key] = true
	}
}

func TestWithTraceContext(t *testing.T) {
	t.Run("valid span adds trace fields", func(t *testing.T) {
		tp := sdktrace.NewTracerProvider()
		t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

		ctx, span := tp.Tracer("context-test").Start(context.Background(), "resolve-price")
		defer span.End()

		logger, recorded := observedLogger(zapcore.InfoLevel)
		WithTraceContext(ctx, logger).Info("cache miss")

		fields := recorded.All()[0].ContextMap()
		assert.Equal(t, span.SpanContext().TraceID().String(), fields["trace_id"])
		assert.Equal(t, span.SpanContext().SpanID().String(), fields["span_id"])
	})

	t.Run("no span returns logger unchanged", func(t *testing.T) {
		logger := zap.NewNop()
		assert.Equal(t, logger, WithTraceContext(context.Background(), logger))
	})

	t.Run("noop span context is skipped", func(t *testing.T) {
		ctx, span := noop.NewTracerProvider().Tracer("context-test").Start(context.Background(), "noop")
		defer span.End()
		assert.False(t, trace.SpanFromContext(ctx).SpanContext().IsValid())

		logger := zap.NewNop()
		assert.Equal(t, logger, WithTraceContext(ctx, logger))
	})
}
