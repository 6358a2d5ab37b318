// Package middleware provides the HTTP middleware stack.
package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/shashiranjanraj/bazaar/pkg/response"
)

// limiter counts requests per client over fixed windows and evicts idle
// clients in the background.
type limiter struct {
	mu      sync.Mutex
	max     int
	window  time.Duration
	clients map[string]*windowCount
}

type windowCount struct {
	count   int
	resetAt time.Time
}

func newLimiter(max int, window time.Duration) *limiter {
	l := &limiter{
		max:     max,
		window:  window,
		clients: map[string]*windowCount{},
	}
	go l.evict()
	return l
}

func (l *limiter) allow(client string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	wc, ok := l.clients[client]
	if !ok || now.After(wc.resetAt) {
		l.clients[client] = &windowCount{count: 1, resetAt: now.Add(l.window)}
		return l.max >= 1
	}

	wc.count++
	return wc.count <= l.max
}

// evict drops expired windows once a minute so the client map cannot grow
// without bound.
func (l *limiter) evict() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		now := time.Now()
		l.mu.Lock()
		for client, wc := range l.clients {
			if now.After(wc.resetAt) {
				delete(l.clients, client)
			}
		}
		l.mu.Unlock()
	}
}

func clientKey(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		return fwd
	}
	return r.RemoteAddr
}

// RateLimit limits each client IP to max requests per window, answering
// excess requests with a 429 envelope.
func RateLimit(max int, window time.Duration) func(http.Handler) http.Handler {
	l := newLimiter(max, window)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !l.allow(clientKey(r)) {
				response.Fail(w, http.StatusTooManyRequests, "Too Many Requests")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
