package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/goleak"
)

func TestRateLimiter_AllowAndExhaust(t *testing.T) {
	t.Parallel()
	rl := NewRateLimiter(2, time.Hour)
	t.Cleanup(rl.Stop)

	if !rl.Allow("10.0.0.1") {
		t.Fatal("first request denied")
	}
	if !rl.Allow("10.0.0.1") {
		t.Fatal("second request denied")
	}
	if rl.Allow("10.0.0.1") {
		t.Fatal("third request allowed past the limit")
	}
}

func TestRateLimiter_PerIP(t *testing.T) {
	t.Parallel()
	rl := NewRateLimiter(1, time.Hour)
	t.Cleanup(rl.Stop)

	if !rl.Allow("10.0.0.1") {
		t.Fatal("first IP denied")
	}
	if !rl.Allow("10.0.0.2") {
		t.Fatal("second IP denied after first exhausted its own limit")
	}
	if rl.Allow("10.0.0.1") {
		t.Fatal("exhausted IP allowed again within the window")
	}
}

func TestRateLimiter_WindowReset(t *testing.T) {
	t.Parallel()
	rl := NewRateLimiter(1, 10*time.Millisecond)
	t.Cleanup(rl.Stop)

	if !rl.Allow("10.0.0.1") {
		t.Fatal("first request denied")
	}
	if rl.Allow("10.0.0.1") {
		t.Fatal("second request allowed within the window")
	}

	time.Sleep(20 * time.Millisecond)
	if !rl.Allow("10.0.0.1") {
		t.Fatal("request denied after the window reset")
	}
}

func TestRateLimiter_RetryAfter(t *testing.T) {
	t.Parallel()
	rl := NewRateLimiter(1, time.Hour)
	t.Cleanup(rl.Stop)

	if got := rl.RetryAfter("10.0.0.1"); got != 0 {
		t.Errorf("RetryAfter for unseen IP = %d, want 0", got)
	}

	rl.Allow("10.0.0.1")
	got := rl.RetryAfter("10.0.0.1")
	if got <= 0 || got > 3601 {
		t.Errorf("RetryAfter = %d, want within (0, 3601]", got)
	}
}

func TestRateLimiterMiddleware(t *testing.T) {
	t.Parallel()
	rl := NewRateLimiter(1, time.Hour)
	t.Cleanup(rl.Stop)
	h := rl.Middleware(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/x", nil)
	w := httptest.NewRecorder()
	h(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("first request status = %d, want 200", w.Code)
	}

	w = httptest.NewRecorder()
	h(w, req)
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("second request status = %d, want 429", w.Code)
	}
	if w.Header().Get("Retry-After") == "" {
		t.Error("429 response missing Retry-After header")
	}
}

func TestRateLimiter_StopEndsCleanupGoroutine(t *testing.T) {
	// Runs sequentially so goroutines from parallel tests cannot leak in.
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	rl := NewRateLimiter(1, time.Hour)
	if !rl.Allow("10.0.0.1") {
		t.Fatal("request denied")
	}
	rl.Stop()
}

func TestClientIP(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		remoteAddr string
		forwarded  string
		want       string
	}{
		{"plain addr", "192.0.2.7:4312", "", "192.0.2.7"},
		{"no port", "192.0.2.7", "", "192.0.2.7"},
		{"forwarded single", "10.0.0.1:80", "203.0.113.9", "203.0.113.9"},
		{"forwarded chain", "10.0.0.1:80", "203.0.113.9, 10.0.0.2", "203.0.113.9"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/x", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.forwarded != "" {
				req.Header.Set("X-Forwarded-For", tt.forwarded)
			}
			if got := clientIP(req); got != tt.want {
				t.Errorf("clientIP = %q, want %q", got, tt.want)
			}
		})
	}
}
