package gateway

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
}

func TestRateLimiterBurst(t *testing.T) {
	limiter := NewRateLimiter(60, 3)
	handler := limiter.Middleware(okHandler())

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/stats/leaderboard", nil)
		req.RemoteAddr = "10.0.0.7:50000"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code, "request %d", i)
	}

	req := httptest.NewRequest(http.MethodGet, "/stats/leaderboard", nil)
	req.RemoteAddr = "10.0.0.7:50000"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	// 不同IP不受影响
	req = httptest.NewRequest(http.MethodGet, "/stats/leaderboard", nil)
	req.RemoteAddr = "10.0.0.8:50000"
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSecurityHeaders(t *testing.T) {
	handler := NewSecurityMiddleware().Middleware(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/catalog/items", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
	assert.Equal(t, "LudusVitae", rec.Header().Get("Server"))
}

func TestCORSPreflight(t *testing.T) {
	handler := NewCORSMiddleware().Middleware(okHandler())

	req := httptest.NewRequest(http.MethodOptions, "/auth/login", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	assert.NotEmpty(t, rec.Header().Get("Access-Control-Allow-Methods"))
}

func TestExtractToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/stats/rank/1", nil)
	req.Header.Set("Authorization", "Bearer abc123")
	assert.Equal(t, "abc123", extractToken(req))

	req = httptest.NewRequest(http.MethodGet, "/stats/rank/1?token=xyz789", nil)
	assert.Equal(t, "xyz789", extractToken(req))

	req = httptest.NewRequest(http.MethodGet, "/stats/rank/1", nil)
	assert.Equal(t, "", extractToken(req))
}
