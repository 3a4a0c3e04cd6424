package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/artstack/creative-showcase/internal/middleware"
	"github.com/artstack/creative-showcase/internal/testutil"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRateLimitedRouter(t *testing.T, config middleware.RateLimiterConfig) (*gin.Engine, *testutil.TestRedis) {
	testRedis := testutil.SetupTestRedis(t)
	t.Cleanup(func() { testRedis.Teardown(t) })

	client := redis.NewClient(&redis.Options{Addr: testRedis.Addr})
	limiter := middleware.NewRateLimiter(client, config)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(limiter.Middleware())
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	return router, testRedis
}

func doRequest(router *gin.Engine) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.RemoteAddr = "192.0.2.1:12345"
	router.ServeHTTP(w, req)
	return w
}

func TestRateLimiter_AllowsWithinLimit(t *testing.T) {
	router, _ := setupRateLimitedRouter(t, middleware.RateLimiterConfig{
		MaxRequests: 5,
		Window:      time.Minute,
	})

	for i := 0; i < 5; i++ {
		w := doRequest(router)
		assert.Equal(t, http.StatusOK, w.Code, "request %d should pass", i+1)
	}
}

func TestRateLimiter_BlocksOverLimit(t *testing.T) {
	router, _ := setupRateLimitedRouter(t, middleware.RateLimiterConfig{
		MaxRequests: 3,
		Window:      time.Minute,
	})

	for i := 0; i < 3; i++ {
		w := doRequest(router)
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := doRequest(router)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
}

func TestRateLimiter_WindowResets(t *testing.T) {
	router, testRedis := setupRateLimitedRouter(t, middleware.RateLimiterConfig{
		MaxRequests: 1,
		Window:      time.Minute,
	})

	require.Equal(t, http.StatusOK, doRequest(router).Code)
	require.Equal(t, http.StatusTooManyRequests, doRequest(router).Code)

	// Advance miniredis past the window so the counter key expires
	testRedis.Server.FastForward(61 * time.Second)

	assert.Equal(t, http.StatusOK, doRequest(router).Code)
}

func TestRateLimiter_FailsOpenWhenRedisDown(t *testing.T) {
	router, testRedis := setupRateLimitedRouter(t, middleware.RateLimiterConfig{
		MaxRequests: 1,
		Window:      time.Minute,
	})

	testRedis.Server.Close()

	// Redis being unreachable must not reject traffic
	for i := 0; i < 3; i++ {
		w := doRequest(router)
		assert.Equal(t, http.StatusOK, w.Code)
	}
}
