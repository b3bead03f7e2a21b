package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func TestRedisRateLimiterAllowsWithinLimit(t *testing.T) {
	rl := NewRedisRateLimiter(newTestRedis(t), 3, time.Minute)
	mw := rl.Middleware(nil)

	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/appointments", nil)
		req.Header.Set("X-Real-Ip", "203.0.113.5")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d: expected status %d, got %d", i+1, http.StatusOK, rec.Code)
		}
	}
}

func TestRedisRateLimiterRejectsOverLimit(t *testing.T) {
	rl := NewRedisRateLimiter(newTestRedis(t), 2, time.Minute)
	mw := rl.Middleware(nil)

	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	var last int
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/appointments", nil)
		req.Header.Set("X-Real-Ip", "203.0.113.5")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		last = rec.Code
	}

	if last != http.StatusTooManyRequests {
		t.Fatalf("expected status %d after limit, got %d", http.StatusTooManyRequests, last)
	}
}

func TestRedisRateLimiterSeparatesClients(t *testing.T) {
	rl := NewRedisRateLimiter(newTestRedis(t), 1, time.Minute)
	mw := rl.Middleware(nil)

	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	first := httptest.NewRequest(http.MethodPost, "/appointments", nil)
	first.Header.Set("X-Real-Ip", "203.0.113.5")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, first)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected first client allowed, got %d", rec.Code)
	}

	second := httptest.NewRequest(http.MethodPost, "/appointments", nil)
	second.Header.Set("X-Real-Ip", "198.51.100.7")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, second)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected second client allowed, got %d", rec.Code)
	}
}

func TestRedisRateLimiterFailsOpen(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	rl := NewRedisRateLimiter(rdb, 1, time.Minute)
	mw := rl.Middleware(nil)
	mr.Close()

	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost, "/appointments", nil)
	req.Header.Set("X-Real-Ip", "203.0.113.5")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected fail-open when redis is down, got %d", rec.Code)
	}
}
