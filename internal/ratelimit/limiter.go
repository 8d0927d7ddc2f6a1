// Package ratelimit implements fixed-window request counters per client.
package ratelimit

import (
	"sync"
	"time"
)

// window is one fixed counting window for a single client.
type window struct {
	start time.Time
	count int
}

// Limiter allows up to limit requests per client key within each window of
// the configured size. Windows reset lazily on the first request after they
// elapse. Safe for concurrent use.
type Limiter struct {
	mu      sync.Mutex
	clients map[string]*window
	limit   int
	size    time.Duration
	now     func() time.Time
}

func NewLimiter(limit int, size time.Duration) *Limiter {
	return &Limiter{
		clients: make(map[string]*window),
		limit:   limit,
		size:    size,
		now:     time.Now,
	}
}

// NewLimiterWithClock is for tests that need to control window expiry.
func NewLimiterWithClock(limit int, size time.Duration, now func() time.Time) *Limiter {
	l := NewLimiter(limit, size)
	l.now = now
	return l
}

// Allow records a request for key and reports whether it fits the window.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	w, ok := l.clients[key]
	if !ok || now.Sub(w.start) >= l.size {
		w = &window{start: now}
		l.clients[key] = w
	}
	if w.count >= l.limit {
		return false
	}
	w.count++
	return true
}
