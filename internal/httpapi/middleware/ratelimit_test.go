package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestRateLimit_AllowsThenBlocks(t *testing.T) {
	h := RateLimit(60, 2)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	req := httptest.NewRequest("GET", "/page_loadtime/example.com", nil)
	req.RemoteAddr = "1.2.3.4:1234"

	for i := 0; i < 2; i++ {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		if rr.Code != 200 {
			t.Fatalf("want 200 got %d", rr.Code)
		}
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != 429 {
		t.Fatalf("want 429 got %d", rr.Code)
	}

	// other clients keep their own bucket
	other := httptest.NewRequest("GET", "/", nil)
	other.RemoteAddr = "5.6.7.8:999"
	rrOther := httptest.NewRecorder()
	h.ServeHTTP(rrOther, other)
	if rrOther.Code != 200 {
		t.Fatalf("want 200 for another client got %d", rrOther.Code)
	}
}

func TestLimiter_RefillsOverTime(t *testing.T) {
	l := newLimiter(1, 1, time.Minute)
	now := time.Now()
	if !l.allow("k", now) {
		t.Fatalf("first call should pass")
	}
	if l.allow("k", now) {
		t.Fatalf("second call should be limited")
	}
	if !l.allow("k", now.Add(1100*time.Millisecond)) {
		t.Fatalf("bucket should refill after a second")
	}
}

func TestLimiter_SweepsIdleBuckets(t *testing.T) {
	l := newLimiter(1, 1, time.Minute)
	now := time.Now()
	l.allow("idle", now)
	l.allow("fresh", now.Add(2*time.Minute))
	if _, ok := l.m["idle"]; ok {
		t.Fatalf("idle bucket should have been swept")
	}
	if _, ok := l.m["fresh"]; !ok {
		t.Fatalf("fresh bucket missing")
	}
}

func TestRateLimit_DisabledPassesThrough(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
	h := RateLimit(0, 0)(next)
	for i := 0; i < 100; i++ {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest("GET", "/", nil))
		if rr.Code != 200 {
			t.Fatalf("disabled limiter blocked request %d", i)
		}
	}
}

func TestClientIP(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "10.0.0.1:5555"
	if got := clientIP(r); got != "10.0.0.1" {
		t.Fatalf("want 10.0.0.1, got %q", got)
	}
	r.Header.Set("X-Forwarded-For", "9.9.9.9, 10.0.0.1")
	if got := clientIP(r); got != "9.9.9.9" {
		t.Fatalf("want 9.9.9.9, got %q", got)
	}
}
