package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func limitedRouter(limit int, window time.Duration) *gin.Engine {
	rl := NewRateLimiter(limit, window, nil)

	r := gin.New()
	r.POST("/login", rl.Middleware(KeyByIP), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	return r
}

func hit(r *gin.Engine) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.RemoteAddr = "10.0.0.1:54321"

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	return w
}

func TestRateLimiter_BlocksOverLimit(t *testing.T) {
	r := limitedRouter(2, time.Minute)

	for i := 0; i < 2; i++ {
		if w := hit(r); w.Code != http.StatusOK {
			t.Fatalf("request %d: status %d", i+1, w.Code)
		}
	}

	w := hit(r)
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("over limit: status %d, want 429", w.Code)
	}
	if w.Header().Get("Retry-After") == "" {
		t.Fatalf("expected a Retry-After header")
	}
}

func TestRateLimiter_WindowResets(t *testing.T) {
	r := limitedRouter(1, 30*time.Millisecond)

	if w := hit(r); w.Code != http.StatusOK {
		t.Fatalf("first request: status %d", w.Code)
	}
	if w := hit(r); w.Code != http.StatusTooManyRequests {
		t.Fatalf("second request: status %d, want 429", w.Code)
	}

	time.Sleep(50 * time.Millisecond)

	if w := hit(r); w.Code != http.StatusOK {
		t.Fatalf("after window: status %d", w.Code)
	}
}
