package security

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestLimiterAllow(t *testing.T) {
	l := NewLimiter(3, time.Minute)
	now := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		assert.True(t, l.Allow("1.1.1.1", now))
	}
	assert.False(t, l.Allow("1.1.1.1", now))
	assert.True(t, l.Allow("2.2.2.2", now))

	// 20 秒补充一个令牌
	assert.True(t, l.Allow("1.1.1.1", now.Add(21*time.Second)))
}

func TestLimiterSweep(t *testing.T) {
	l := NewLimiter(10, time.Minute)
	now := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)

	l.Allow("old", now)
	l.Allow("fresh", now.Add(3*time.Minute))

	assert.Equal(t, 1, l.Sweep(now.Add(4*time.Minute)))
	assert.Len(t, l.visitors, 1)
	assert.Contains(t, l.visitors, "fresh")
}

func TestLimiterDefaults(t *testing.T) {
	l := NewLimiter(0, 0)
	assert.Equal(t, 1, l.burst)
	assert.Equal(t, 3*time.Minute, l.expiry)
}

func newRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(handlers...)
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	return r
}

func TestLimiterMiddleware(t *testing.T) {
	r := newRouter(NewLimiter(1, time.Minute).Middleware())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "too many requests")
}

func TestCORS(t *testing.T) {
	r := newRouter(CORS([]string{"http://localhost:3000"}))

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "Idempotency-Key")

	req = httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Origin", "http://evil.example")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/ping", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestCORSAllowAll(t *testing.T) {
	r := newRouter(CORS([]string{"*"}))

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Origin", "http://anything.example")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "http://anything.example", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestSecureHeaders(t *testing.T) {
	r := newRouter(Secure())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Empty(t, w.Header().Get("Strict-Transport-Security"))
}
