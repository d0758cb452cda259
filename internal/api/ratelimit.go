// Rate limiting for endpoints that consume model tokens.
// Simple in-memory request count per client IP.
package api

import (
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

// RateLimiter tracks request counts per IP within a fixed window.
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string]*window
	maxHits int           // max requests per window
	span    time.Duration // window length
	stop    chan struct{}
}

type window struct {
	hits     int
	openedAt time.Time
}

// NewRateLimiter creates a limiter allowing maxHits requests per span.
// Call Stop when the limiter is no longer needed.
func NewRateLimiter(maxHits int, span time.Duration) *RateLimiter {
	rl := &RateLimiter{
		clients: make(map[string]*window),
		maxHits: maxHits,
		span:    span,
		stop:    make(chan struct{}),
	}
	go rl.janitor()
	return rl
}

// janitor periodically drops stale entries until Stop is called.
func (rl *RateLimiter) janitor() {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			rl.cleanup()
		case <-rl.stop:
			return
		}
	}
}

// Stop ends the cleanup goroutine. The limiter itself keeps working.
func (rl *RateLimiter) Stop() {
	close(rl.stop)
}

// Allow reports whether the given IP is within its limit, counting the
// request if so.
func (rl *RateLimiter) Allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	win, ok := rl.clients[ip]
	if !ok || now.Sub(win.openedAt) >= rl.span {
		rl.clients[ip] = &window{hits: 1, openedAt: now}
		return true
	}

	if win.hits < rl.maxHits {
		win.hits++
		return true
	}
	return false
}

// RetryAfter returns how many seconds until the window resets for this IP.
func (rl *RateLimiter) RetryAfter(ip string) int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	win, ok := rl.clients[ip]
	if !ok {
		return 0
	}
	remaining := rl.span - time.Since(win.openedAt)
	if remaining < 0 {
		return 0
	}
	return int(remaining.Seconds()) + 1
}

func (rl *RateLimiter) cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	for ip, win := range rl.clients {
		if now.Sub(win.openedAt) > 2*rl.span {
			delete(rl.clients, ip)
		}
	}
}

// Middleware wraps a handler with the limit. Returns 429 with a
// Retry-After header when exceeded.
func (rl *RateLimiter) Middleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r)
		if !rl.Allow(ip) {
			w.Header().Set("Retry-After", strconv.Itoa(rl.RetryAfter(ip)))
			http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
			return
		}
		next(w, r)
	}
}

// clientIP extracts the caller's address, preferring X-Forwarded-For
// for proxied requests.
func clientIP(r *http.Request) string {
	ip := r.RemoteAddr
	if i := strings.LastIndexByte(ip, ':'); i >= 0 {
		ip = ip[:i]
	}
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		// Take the first IP if comma-separated.
		first, _, _ := strings.Cut(xff, ",")
		ip = strings.TrimSpace(first)
	}
	return ip
}
