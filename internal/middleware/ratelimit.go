package middleware

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

type windowEntry struct {
	mu       sync.Mutex
	requests []time.Time
}

// RateLimiter allows at most max requests per client within a sliding window.
type RateLimiter struct {
	max    int
	window time.Duration
	store  sync.Map
	now    func() time.Time
}

func NewRateLimiter(max int, window time.Duration) *RateLimiter {
	return &RateLimiter{max: max, window: window, now: time.Now}
}

// allow records a request from client and reports whether it fits the
// window. When it does not, it also returns how long until a slot frees.
func (rl *RateLimiter) allow(client string) (bool, time.Duration) {
	now := rl.now()
	cutoff := now.Add(-rl.window)

	v, _ := rl.store.LoadOrStore(client, &windowEntry{})
	entry := v.(*windowEntry)

	entry.mu.Lock()
	defer entry.mu.Unlock()

	filtered := entry.requests[:0]
	for _, t := range entry.requests {
		if t.After(cutoff) {
			filtered = append(filtered, t)
		}
	}
	entry.requests = filtered

	if len(entry.requests) >= rl.max {
		return false, entry.requests[0].Add(rl.window).Sub(now)
	}

	entry.requests = append(entry.requests, now)
	return true, 0
}

func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		client := clientIP(r)
		ok, retryAfter := rl.allow(client)
		if !ok {
			log.WithFields(log.Fields{"client": client, "path": r.URL.Path}).Warn("rate limit exceeded")
			w.Header().Set("Retry-After", strconv.Itoa(int(retryAfter.Seconds())+1))
			writeError(w, http.StatusTooManyRequests, "too many requests")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		return strings.TrimSpace(first)
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
