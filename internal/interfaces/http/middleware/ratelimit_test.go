package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func rateLimitedRouter(mw gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(mw)
	router.GET("/catalog/products", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	router.POST("/auth/login", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	return router
}

func limitedRequest(router *gin.Engine, method, path string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	req.RemoteAddr = "10.0.0.9:41000"
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRateLimiter_Allow(t *testing.T) {
	limiter := NewRateLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		assert.True(t, limiter.Allow("branch-a"), "request %d is within budget", i+1)
	}
	assert.False(t, limiter.Allow("branch-a"), "budget exhausted")

	// a different key has its own bucket
	assert.True(t, limiter.Allow("branch-b"))
}

func TestRateLimiter_WindowReset(t *testing.T) {
	limiter := NewRateLimiter(1, 40*time.Millisecond)

	assert.True(t, limiter.Allow("k"))
	assert.False(t, limiter.Allow("k"))

	time.Sleep(50 * time.Millisecond)
	assert.True(t, limiter.Allow("k"), "a fresh window refills the bucket")
}

func TestRateLimiter_Remaining(t *testing.T) {
	limiter := NewRateLimiter(5, time.Minute)

	assert.Equal(t, 5, limiter.Remaining("unseen-key"))

	limiter.Allow("seen-key")
	limiter.Allow("seen-key")
	assert.Equal(t, 3, limiter.Remaining("seen-key"))
	assert.Equal(t, 3, limiter.Remaining("seen-key"), "Remaining does not consume")
}

func TestRateLimiter_ConcurrentTake(t *testing.T) {
	limiter := NewRateLimiter(100, time.Minute)

	var wg sync.WaitGroup
	var mu sync.Mutex
	allowed := 0
	for i := 0; i < 150; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if limiter.Allow("shared") {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, allowed, "exactly the budget passes under contention")
}

func TestRateLimit_BlocksAndReportsHeaders(t *testing.T) {
	router := rateLimitedRouter(RateLimit(NewRateLimiter(2, time.Minute)))

	w := limitedRequest(router, http.MethodGet, "/catalog/products", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "1", w.Header().Get("X-RateLimit-Remaining"))

	w = limitedRequest(router, http.MethodGet, "/catalog/products", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))

	w = limitedRequest(router, http.MethodGet, "/catalog/products", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "ERR_RATE_LIMITED")
}

func TestRateLimit_ScopesKeyByRestaurant(t *testing.T) {
	router := rateLimitedRouter(RateLimit(NewRateLimiter(1, time.Minute)))

	rest1 := map[string]string{"X-Restaurant-ID": "rest-1"}
	rest2 := map[string]string{"X-Restaurant-ID": "rest-2"}

	assert.Equal(t, http.StatusOK, limitedRequest(router, http.MethodGet, "/catalog/products", rest1).Code)
	assert.Equal(t, http.StatusTooManyRequests, limitedRequest(router, http.MethodGet, "/catalog/products", rest1).Code)

	// the same IP under another restaurant has its own budget
	assert.Equal(t, http.StatusOK, limitedRequest(router, http.MethodGet, "/catalog/products", rest2).Code)
}

func TestRateLimitByKey(t *testing.T) {
	limiter := NewRateLimiter(1, time.Minute)
	router := rateLimitedRouter(RateLimitByKey(limiter, func(c *gin.Context) string {
		return c.GetHeader("X-User-ID")
	}))

	user1 := map[string]string{"X-User-ID": "user-1"}
	user2 := map[string]string{"X-User-ID": "user-2"}

	assert.Equal(t, http.StatusOK, limitedRequest(router, http.MethodGet, "/catalog/products", user1).Code)
	assert.Equal(t, http.StatusTooManyRequests, limitedRequest(router, http.MethodGet, "/catalog/products", user1).Code)
	assert.Equal(t, http.StatusOK, limitedRequest(router, http.MethodGet, "/catalog/products", user2).Code)
}

func TestAuthRateLimit_BlockedLoginsGetRetryAfter(t *testing.T) {
	router := rateLimitedRouter(AuthRateLimit(NewRateLimiter(2, time.Minute)))

	for i := 0; i < 2; i++ {
		w := limitedRequest(router, http.MethodPost, "/auth/login", nil)
		assert.Equal(t, http.StatusOK, w.Code, "attempt %d within budget", i+1)
	}

	w := limitedRequest(router, http.MethodPost, "/auth/login", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "60", w.Header().Get("Retry-After"))
	assert.Contains(t, w.Body.String(), "authentication attempts")
}

func TestAuthRateLimit_ReportsBudgetHeaders(t *testing.T) {
	router := rateLimitedRouter(AuthRateLimit(NewRateLimiter(5, time.Minute)))

	w := limitedRequest(router, http.MethodPost, "/auth/login", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "5", w.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "4", w.Header().Get("X-RateLimit-Remaining"))
}

func TestAuthRateLimit_IsolatedFromGlobalLimiter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	authLimiter := NewRateLimiter(1, time.Minute)
	globalLimiter := NewRateLimiter(100, time.Minute)

	router := gin.New()
	auth := router.Group("/auth", AuthRateLimit(authLimiter))
	auth.POST("/login", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	api := router.Group("/", RateLimit(globalLimiter))
	api.GET("/catalog/products", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	assert.Equal(t, http.StatusOK, limitedRequest(router, http.MethodPost, "/auth/login", nil).Code)
	assert.Equal(t, http.StatusTooManyRequests, limitedRequest(router, http.MethodPost, "/auth/login", nil).Code)

	// catalog traffic from the same IP rides the global limiter
	assert.Equal(t, http.StatusOK, limitedRequest(router, http.MethodGet, "/catalog/products", nil).Code)
}
