package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/DesarrolladorTAE/Clic-Menu-sub000/internal/infrastructure/logger"
	"github.com/DesarrolladorTAE/Clic-Menu-sub000/internal/interfaces/http/dto"
)

const (
	// RestaurantIDKey is the gin context key holding the resolved tenant ID.
	RestaurantIDKey = "restaurant_id"

	// RestaurantHeaderKey carries the tenant ID when no JWT claim is present.
	RestaurantHeaderKey = "X-Restaurant-ID"
)

// RestaurantMiddlewareConfig controls how the tenant is resolved for a request.
type RestaurantMiddlewareConfig struct {
	// FallbackID is used when neither the JWT claim nor the header carries a
	// tenant. Leave nil in production so untagged requests are rejected.
	FallbackID *uuid.UUID

	// SkipPaths lists routes that do not belong to any tenant.
	SkipPaths []string

	// Required rejects requests that resolve no tenant at all.
	Required bool

	Logger *zap.Logger
}

// RestaurantMiddleware resolves the tenant with the default configuration:
// not required, no fallback.
func RestaurantMiddleware() gin.HandlerFunc {
	return RestaurantMiddlewareWithConfig(RestaurantMiddlewareConfig{})
}

// RestaurantMiddlewareWithConfig resolves the tenant for each request and
// stores it under RestaurantIDKey. The JWT claim wins over the header; the
// configured fallback applies only when both are absent. A malformed ID is
// rejected regardless of Required.
func RestaurantMiddlewareWithConfig(config RestaurantMiddlewareConfig) gin.HandlerFunc {
	log := config.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return func(c *gin.Context) {
		for _, path := range config.SkipPaths {
			if strings.HasPrefix(c.Request.URL.Path, path) {
				c.Next()
				return
			}
		}

		raw := GetJWTRestaurantID(c)
		if raw == "" {
			raw = c.GetHeader(RestaurantHeaderKey)
		}

		var restaurantID uuid.UUID
		switch {
		case raw != "":
			parsed, err := uuid.Parse(raw)
			if err != nil {
				log.Warn("rejected malformed restaurant id",
					zap.String("path", c.Request.URL.Path))
				c.AbortWithStatusJSON(http.StatusUnauthorized,
					dto.NewErrorResponse("UNAUTHORIZED", "Invalid restaurant identifier"))
				return
			}
			restaurantID = parsed
		case config.FallbackID != nil:
			restaurantID = *config.FallbackID
		case config.Required:
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewErrorResponse("UNAUTHORIZED", "Restaurant identification required"))
			return
		default:
			c.Next()
			return
		}

		c.Set(RestaurantIDKey, restaurantID.String())

		ctx, _ := logger.WithRestaurantID(c.Request.Context(), log, restaurantID.String())
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// GetRestaurantID returns the resolved tenant ID, or empty when none was set.
func GetRestaurantID(c *gin.Context) string {
	return c.GetString(RestaurantIDKey)
}

// GetRestaurantUUID returns the resolved tenant ID parsed as a UUID.
func GetRestaurantUUID(c *gin.Context) (uuid.UUID, bool) {
	raw := GetRestaurantID(c)
	if raw == "" {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
