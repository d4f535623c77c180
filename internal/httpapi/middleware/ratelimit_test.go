package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"codementor-backend/internal/common"
)

type stubLimiter struct {
	allowed bool
	err     error
	calls   int
}

func (s *stubLimiter) Allow(ctx context.Context, key string, limit int64, window time.Duration) (bool, error) {
	_ = ctx
	_ = key
	_ = limit
	_ = window
	s.calls++
	return s.allowed, s.err
}

func limitedRouter(l Limiter, limit int64) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RateLimit(l, limit, time.Minute))
	r.GET("/probe", func(c *gin.Context) {
		common.OK(c, gin.H{"status": "ok"})
	})
	return r
}

func hit(r *gin.Engine) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimitDisabled(t *testing.T) {
	// nil limiter: requests pass through
	if w := hit(limitedRouter(nil, 10)); w.Code != http.StatusOK {
		t.Fatalf("nil limiter: expected 200, got %d", w.Code)
	}

	// non-positive limit: limiter is never consulted
	l := &stubLimiter{allowed: false}
	if w := hit(limitedRouter(l, 0)); w.Code != http.StatusOK {
		t.Fatalf("zero limit: expected 200, got %d", w.Code)
	}
	if l.calls != 0 {
		t.Fatalf("zero limit: expected limiter untouched, got %d calls", l.calls)
	}
}

func TestRateLimitAllowsUnderLimit(t *testing.T) {
	l := &stubLimiter{allowed: true}
	if w := hit(limitedRouter(l, 10)); w.Code != http.StatusOK {
		t.Fatalf("expected 200 under limit, got %d", w.Code)
	}
	if l.calls != 1 {
		t.Fatalf("expected one limiter call, got %d", l.calls)
	}
}

func TestRateLimitDeniesOverLimit(t *testing.T) {
	l := &stubLimiter{allowed: false}
	w := hit(limitedRouter(l, 10))
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 over limit, got %d", w.Code)
	}

	var env struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if env.Code != 42900 {
		t.Fatalf("expected code 42900, got %d", env.Code)
	}
}

func TestRateLimitFailsOpen(t *testing.T) {
	l := &stubLimiter{err: errors.New("redis down")}
	if w := hit(limitedRouter(l, 10)); w.Code != http.StatusOK {
		t.Fatalf("expected limiter errors to fail open, got %d", w.Code)
	}
}
