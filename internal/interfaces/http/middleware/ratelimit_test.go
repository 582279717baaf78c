package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/GaudenzB/blueearth-contracts/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRateLimiter_Allow(t *testing.T) {
	rl := NewMemoryRateLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		allowed, remaining, err := rl.Allow(context.Background(), "client-1")
		require.NoError(t, err)
		assert.True(t, allowed)
		assert.Equal(t, 2-i, remaining)
	}

	allowed, remaining, err := rl.Allow(context.Background(), "client-1")
	require.NoError(t, err)
	assert.False(t, allowed)
	assert.Equal(t, 0, remaining)

	// Other keys are unaffected
	allowed, _, err = rl.Allow(context.Background(), "client-2")
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestMemoryRateLimiter_WindowReset(t *testing.T) {
	rl := NewMemoryRateLimiter(1, 10*time.Millisecond)

	allowed, _, _ := rl.Allow(context.Background(), "client-1")
	assert.True(t, allowed)
	allowed, _, _ = rl.Allow(context.Background(), "client-1")
	assert.False(t, allowed)

	time.Sleep(20 * time.Millisecond)

	allowed, _, _ = rl.Allow(context.Background(), "client-1")
	assert.True(t, allowed)
}

func TestRateLimit_Middleware(t *testing.T) {
	rl := NewMemoryRateLimiter(2, time.Minute)

	router := gin.New()
	router.Use(RateLimit(rl))
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/", nil)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, dto.ErrCodeRateLimited, resp.Error.Code)
}

func TestRateLimit_KeyedByTenant(t *testing.T) {
	rl := NewMemoryRateLimiter(1, time.Minute)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(JWTTenantIDKey, c.GetHeader("X-Test-Tenant"))
		c.Next()
	})
	router.Use(RateLimit(rl))
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	send := func(tenant string) int {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("X-Test-Tenant", tenant)
		router.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, send("tenant-a"))
	assert.Equal(t, http.StatusTooManyRequests, send("tenant-a"))
	// A different tenant from the same IP has its own window
	assert.Equal(t, http.StatusOK, send("tenant-b"))
}

type failingLimiter struct{}

func (failingLimiter) Allow(context.Context, string) (bool, int, error) {
	return false, 0, errors.New("redis unreachable")
}

func (failingLimiter) Limit() int { return 10 }

func TestRateLimit_FailsOpen(t *testing.T) {
	router := gin.New()
	router.Use(RateLimit(failingLimiter{}))
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
