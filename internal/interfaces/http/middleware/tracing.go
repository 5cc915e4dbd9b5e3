// Package middleware provides HTTP middleware for the management console.
package middleware

import (
	"net/http"
	"regexp"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	// MaxRequestIDLength caps request IDs copied from headers into spans
	MaxRequestIDLength = 128
	// MaxRestaurantIDLength caps restaurant IDs copied from headers into spans
	MaxRestaurantIDLength = 64
)

var uuidRegex = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

// TracingConfig configures the tracing middleware
type TracingConfig struct {
	ServiceName string
	Enabled     bool
}

// DefaultTracingConfig returns the default tracing configuration
func DefaultTracingConfig() TracingConfig {
	return TracingConfig{
		ServiceName: "clicmenu-console",
		Enabled:     true,
	}
}

// Tracing traces requests with the default configuration
func Tracing() gin.HandlerFunc {
	return TracingWithConfig(DefaultTracingConfig())
}

// TracingWithConfig wraps otelgin so every request gets a span named after
// its route pattern, then annotates the span with the request, restaurant
// and user identity when available.
func TracingWithConfig(cfg TracingConfig) gin.HandlerFunc {
	if !cfg.Enabled {
		return func(c *gin.Context) { c.Next() }
	}

	otelMiddleware := otelgin.Middleware(cfg.ServiceName)
	return func(c *gin.Context) {
		otelMiddleware(c)

		if span := trace.SpanFromContext(c.Request.Context()); span.IsRecording() {
			annotateRequestSpan(c, span)
		}
	}
}

// TracingAttributeInjector re-annotates the current span after the JWT
// middleware has run, so spans carry the authenticated identity rather than
// just whatever headers the client sent. Mount after Tracing and JWT auth.
func TracingAttributeInjector() gin.HandlerFunc {
	return func(c *gin.Context) {
		if span := trace.SpanFromContext(c.Request.Context()); span.IsRecording() {
			annotateRequestSpan(c, span)
		}
		c.Next()
	}
}

func annotateRequestSpan(c *gin.Context, span trace.Span) {
	if requestID := spanRequestID(c); requestID != "" {
		span.SetAttributes(attribute.String("request_id", requestID))
	}
	if restaurantID := spanRestaurantID(c); restaurantID != "" {
		span.SetAttributes(attribute.String("restaurant_id", restaurantID))
	}
	if userID := c.GetString(JWTUserIDKey); userID != "" {
		span.SetAttributes(attribute.String("user_id", userID))
	}
}

// spanRequestID prefers the ID minted by the RequestID middleware and falls
// back to the raw header, truncated so oversized headers cannot bloat spans.
func spanRequestID(c *gin.Context) string {
	if id := c.GetString("request_id"); id != "" {
		return id
	}
	headerID := c.GetHeader("X-Request-ID")
	if len(headerID) > MaxRequestIDLength {
		return headerID[:MaxRequestIDLength]
	}
	return headerID
}

// spanRestaurantID prefers the JWT claim; the header fallback only passes
// well-formed UUIDs so clients cannot inject arbitrary trace attributes.
func spanRestaurantID(c *gin.Context) string {
	if id := c.GetString(JWTRestaurantIDKey); id != "" {
		return id
	}
	header := c.GetHeader("X-Restaurant-ID")
	if header == "" || len(header) > MaxRestaurantIDLength || !uuidRegex.MatchString(header) {
		return ""
	}
	return header
}

// SpanErrorMarker flags the request span as errored on 4xx/5xx responses.
// Mount after the Tracing middleware.
func SpanErrorMarker() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		span := trace.SpanFromContext(c.Request.Context())
		if !span.IsRecording() {
			return
		}

		statusCode := c.Writer.Status()
		if statusCode < http.StatusBadRequest {
			return
		}
		span.SetStatus(codes.Error, statusMessage(statusCode))
		span.SetAttributes(attribute.Int("http.status_code", statusCode))
	}
}

func statusMessage(statusCode int) string {
	switch {
	case statusCode >= http.StatusInternalServerError:
		return "Internal Server Error"
	case statusCode == http.StatusUnauthorized:
		return "Unauthorized"
	case statusCode == http.StatusForbidden:
		return "Forbidden"
	case statusCode == http.StatusNotFound:
		return "Not Found"
	default:
		return "Client Error"
	}
}
