package http

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/FloatTech/ttl"
	"golang.org/x/time/rate"
)

// ipRateLimiter keeps one token bucket per client IP. Buckets live in a TTL
// cache sized by the configured window, so idle clients are forgotten
// instead of accumulating forever.
type ipRateLimiter struct {
	mu       sync.Mutex
	limiters *ttl.Cache[string, *rate.Limiter]
	limit    rate.Limit
	burst    int
}

func newIPRateLimiter(window time.Duration, max int) *ipRateLimiter {
	if max <= 0 || window <= 0 {
		return nil
	}

	return &ipRateLimiter{
		limiters: ttl.NewCache[string, *rate.Limiter](window),
		limit:    rate.Limit(float64(max) / window.Seconds()),
		burst:    max,
	}
}

func (l *ipRateLimiter) allow(ip string) bool {
	l.mu.Lock()
	limiter := l.limiters.Get(ip)
	if limiter == nil {
		limiter = rate.NewLimiter(l.limit, l.burst)
		l.limiters.Set(ip, limiter)
	}
	l.mu.Unlock()

	return limiter.Allow()
}

func (h *Handler) withRateLimit(next http.Handler) http.Handler {
	limiter := newIPRateLimiter(h.cfg.Server.RateLimitWindow, h.cfg.Server.RateLimitMax)
	if limiter == nil {
		return next
	}

	h.logger.Info().
		Dur("window", h.cfg.Server.RateLimitWindow).
		Int("max", h.cfg.Server.RateLimitMax).
		Msg("api rate limit enabled")

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !limiter.allow(clientIP(r)) {
			h.writeMessage(w, r, http.StatusTooManyRequests, "too many requests, slow down")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientIP resolves the caller's address, honoring the proxy headers set by
// the usual ingress setups.
func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		if first, _, found := strings.Cut(forwarded, ","); found || first != "" {
			return strings.TrimSpace(first)
		}
	}
	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
