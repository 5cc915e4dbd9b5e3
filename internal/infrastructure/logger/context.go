package logger

import (
	"context"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// contextKey keeps this package's context values from colliding with keys
// set by other packages.
type contextKey string

const (
	// LoggerKey carries the request-scoped logger.
	LoggerKey contextKey = "logger"
	// RequestIDKey carries the request ID minted by the HTTP layer.
	RequestIDKey contextKey = "request_id"
	// RestaurantIDKey carries the authenticated restaurant ID.
	RestaurantIDKey contextKey = "restaurant_id"
	// UserIDKey carries the authenticated staff user ID.
	UserIDKey contextKey = "user_id"
)

// WithContext attaches a logger to the context.
func WithContext(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, LoggerKey, logger)
}

// FromContext returns the logger attached by WithContext. Callers outside a
// request scope get a no-op logger rather than nil.
func FromContext(ctx context.Context) *zap.Logger {
	if logger, ok := ctx.Value(LoggerKey).(*zap.Logger); ok {
		return logger
	}
	return zap.NewNop()
}

// withScope stores value under key and re-attaches a logger enriched with the
// matching field, so downstream FromContext calls log it automatically.
func withScope(ctx context.Context, logger *zap.Logger, key contextKey, value string) (context.Context, *zap.Logger) {
	ctx = context.WithValue(ctx, key, value)
	enriched := logger.With(zap.String(string(key), value))
	return WithContext(ctx, enriched), enriched
}

// WithRestaurantID scopes the context and logger to a restaurant.
func WithRestaurantID(ctx context.Context, logger *zap.Logger, restaurantID string) (context.Context, *zap.Logger) {
	return withScope(ctx, logger, RestaurantIDKey, restaurantID)
}

// WithUserID scopes the context and logger to a staff user.
func WithUserID(ctx context.Context, logger *zap.Logger, userID string) (context.Context, *zap.Logger) {
	return withScope(ctx, logger, UserIDKey, userID)
}

func contextValue(ctx context.Context, key contextKey) string {
	if v, ok := ctx.Value(key).(string); ok {
		return v
	}
	return ""
}

// GetRequestID returns the request ID stored in the context, or "".
func GetRequestID(ctx context.Context) string {
	return contextValue(ctx, RequestIDKey)
}

// GetRestaurantID returns the restaurant ID stored in the context, or "".
func GetRestaurantID(ctx context.Context) string {
	return contextValue(ctx, RestaurantIDKey)
}

// GetUserID returns the staff user ID stored in the context, or "".
func GetUserID(ctx context.Context) string {
	return contextValue(ctx, UserIDKey)
}

// WithTraceContext returns the logger with trace_id and span_id fields taken
// from the context's span, so log lines can be joined with traces. Without a
// valid span the logger is returned unchanged.
func WithTraceContext(ctx context.Context, logger *zap.Logger) *zap.Logger {
	spanCtx := trace.SpanFromContext(ctx).SpanContext()
	if !spanCtx.IsValid() {
		return logger
	}
	return logger.With(
		zap.String("trace_id", spanCtx.TraceID().String()),
		zap.String("span_id", spanCtx.SpanID().String()),
	)
}
