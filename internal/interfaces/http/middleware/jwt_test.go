package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DesarrolladorTAE/Clic-Menu-sub000/internal/infrastructure/auth"
	"github.com/DesarrolladorTAE/Clic-Menu-sub000/internal/infrastructure/config"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testJWTService(accessTTL time.Duration) *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                 "middleware-access-secret-012345678",
		RefreshSecret:          "middleware-refresh-secret-01234567",
		AccessTokenExpiration:  accessTTL,
		RefreshTokenExpiration: 7 * 24 * time.Hour,
		Issuer:                 "clicmenu-console",
		MaxRefreshCount:        10,
	})
}

func issueTestPair(svc *auth.JWTService) (*auth.TokenPair, auth.GenerateTokenInput) {
	input := auth.GenerateTokenInput{
		RestaurantID: uuid.New(),
		UserID:       uuid.New(),
		Username:     "branch-manager",
	}
	pair, _ := svc.GenerateTokenPair(input)
	return pair, input
}

// authedRouter mounts a protected echo route behind the given middleware
func authedRouter(mw gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.Use(mw)
	router.GET("/catalog/products", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return router
}

func authedGet(router *gin.Engine, path, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestJWTAuthMiddleware_ValidToken(t *testing.T) {
	svc := testJWTService(15 * time.Minute)
	pair, input := issueTestPair(svc)

	var claims *auth.Claims
	var userID, restaurantID string

	router := gin.New()
	router.Use(JWTAuthMiddleware(svc))
	router.GET("/catalog/products", func(c *gin.Context) {
		claims = GetJWTClaims(c)
		userID = GetJWTUserID(c)
		restaurantID = GetJWTRestaurantID(c)
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	rec := authedGet(router, "/catalog/products", "Bearer "+pair.AccessToken)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, claims)
	assert.Equal(t, input.UserID.String(), claims.UserID)
	assert.Equal(t, input.RestaurantID.String(), claims.RestaurantID)
	assert.Equal(t, input.UserID.String(), userID)
	assert.Equal(t, input.RestaurantID.String(), restaurantID)
}

func TestJWTAuthMiddleware_RejectsBadCredentials(t *testing.T) {
	svc := testJWTService(15 * time.Minute)
	pair, _ := issueTestPair(svc)
	router := authedRouter(JWTAuthMiddleware(svc))

	cases := []struct {
		name          string
		authorization string
		wantCode      string
	}{
		{"missing header", "", "INVALID_TOKEN"},
		{"not bearer", "Basic dXNlcjpwYXNz", "INVALID_TOKEN"},
		{"empty token", "Bearer ", "INVALID_TOKEN"},
		{"garbage token", "Bearer not.a.jwt", "INVALID_TOKEN"},
		{"refresh token on access route", "Bearer " + pair.RefreshToken, "INVALID_TOKEN_TYPE"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := authedGet(router, "/catalog/products", tc.authorization)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Contains(t, rec.Body.String(), tc.wantCode)
		})
	}
}

func TestJWTAuthMiddleware_ExpiredToken(t *testing.T) {
	svc := testJWTService(-time.Hour)
	pair, _ := issueTestPair(svc)

	rec := authedGet(authedRouter(JWTAuthMiddleware(svc)), "/catalog/products", "Bearer "+pair.AccessToken)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "TOKEN_EXPIRED")
}

func TestJWTAuthMiddleware_RevokedToken(t *testing.T) {
	svc := testJWTService(15 * time.Minute)
	pair, _ := issueTestPair(svc)

	claims, err := svc.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)

	blacklist := auth.NewInMemoryTokenBlacklist()
	require.NoError(t, blacklist.AddToBlacklist(context.Background(), claims.ID, time.Hour))

	cfg := DefaultJWTConfig(svc)
	cfg.TokenBlacklist = blacklist

	rec := authedGet(authedRouter(JWTAuthMiddlewareWithConfig(cfg)), "/catalog/products", "Bearer "+pair.AccessToken)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "TOKEN_REVOKED")
}

func TestJWTAuthMiddleware_UserSessionsInvalidated(t *testing.T) {
	svc := testJWTService(15 * time.Minute)
	pair, input := issueTestPair(svc)

	blacklist := auth.NewInMemoryTokenBlacklist()
	time.Sleep(10 * time.Millisecond) // the cutoff must land after issuance
	require.NoError(t, blacklist.AddUserTokensToBlacklist(context.Background(), input.UserID.String(), time.Hour))

	cfg := DefaultJWTConfig(svc)
	cfg.TokenBlacklist = blacklist

	rec := authedGet(authedRouter(JWTAuthMiddlewareWithConfig(cfg)), "/catalog/products", "Bearer "+pair.AccessToken)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "TOKEN_REVOKED")
}

func TestJWTAuthMiddleware_SkipPaths(t *testing.T) {
	svc := testJWTService(15 * time.Minute)

	cfg := DefaultJWTConfig(svc)
	cfg.SkipPaths = append(cfg.SkipPaths, "/system/ping")
	cfg.SkipPathPrefixes = []string{"/docs"}

	router := gin.New()
	router.Use(JWTAuthMiddlewareWithConfig(cfg))
	for _, path := range []string{"/system/ping", "/docs/index.html", "/api/v1/auth/login", "/catalog/products"} {
		router.GET(path, func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})
	}

	assert.Equal(t, http.StatusOK, authedGet(router, "/system/ping", "").Code)
	assert.Equal(t, http.StatusOK, authedGet(router, "/docs/index.html", "").Code, "prefix skip")
	assert.Equal(t, http.StatusOK, authedGet(router, "/api/v1/auth/login", "").Code, "default skip")
	assert.Equal(t, http.StatusUnauthorized, authedGet(router, "/catalog/products", "").Code)
}

func TestJWTAuthMiddleware_CustomOnError(t *testing.T) {
	svc := testJWTService(15 * time.Minute)

	var seenErr error
	cfg := DefaultJWTConfig(svc)
	cfg.OnError = func(c *gin.Context, err error) {
		seenErr = err
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"custom": "error"})
	}

	rec := authedGet(authedRouter(JWTAuthMiddlewareWithConfig(cfg)), "/catalog/products", "")

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.ErrorIs(t, seenErr, auth.ErrInvalidToken)
}

func TestJWTContextGetters_OutsideMiddleware(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	assert.Nil(t, GetJWTClaims(c))
	assert.Empty(t, GetJWTUserID(c))
	assert.Empty(t, GetJWTRestaurantID(c))
}
