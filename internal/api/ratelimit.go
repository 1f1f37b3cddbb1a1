package api

import (
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// limiterTTL is how long an idle client's bucket is kept before the
// janitor drops it.
const limiterTTL = 10 * time.Minute

// clientLimiter pairs a token bucket with its last-seen time.
type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// rateLimiter implements a per-client-IP token bucket.
type rateLimiter struct {
	mu         sync.Mutex
	clients    map[string]*clientLimiter
	rps        rate.Limit
	burst      int
	trustProxy bool
	logger     *slog.Logger
}

// newRateLimiter creates a per-IP limiter allowing rps sustained
// requests per second with the given burst. When trustProxy is set, the
// client IP is taken from X-Forwarded-For instead of the socket peer.
func newRateLimiter(rps float64, burst int, trustProxy bool, logger *slog.Logger) *rateLimiter {
	return &rateLimiter{
		clients:    make(map[string]*clientLimiter),
		rps:        rate.Limit(rps),
		burst:      burst,
		trustProxy: trustProxy,
		logger:     logger,
	}
}

// allow reports whether the client identified by ip may proceed.
func (rl *rateLimiter) allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cl, ok := rl.clients[ip]
	if !ok {
		cl = &clientLimiter{limiter: rate.NewLimiter(rl.rps, rl.burst)}
		rl.clients[ip] = cl
	}
	cl.lastSeen = time.Now()

	return cl.limiter.Allow()
}

// cleanup drops buckets that have been idle longer than limiterTTL.
// Runs until the stop channel closes.
func (rl *rateLimiter) cleanup(stop <-chan struct{}) {
	ticker := time.NewTicker(limiterTTL)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			rl.mu.Lock()
			cutoff := time.Now().Add(-limiterTTL)
			for ip, cl := range rl.clients {
				if cl.lastSeen.Before(cutoff) {
					delete(rl.clients, ip)
				}
			}
			rl.mu.Unlock()
		}
	}
}

// clientIP extracts the client address for rate limiting.
func (rl *rateLimiter) clientIP(r *http.Request) string {
	if rl.trustProxy {
		if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
			// First entry is the originating client.
			if idx := strings.IndexByte(fwd, ','); idx >= 0 {
				fwd = fwd[:idx]
			}
			return strings.TrimSpace(fwd)
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// middleware rejects over-limit clients with 429. The body is still a
// ChatResponse so the front-end can render it.
func (rl *rateLimiter) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := rl.clientIP(r)
		if !rl.allow(ip) {
			rl.logger.Warn("rate limit exceeded", "ip", ip, "path", r.URL.Path)
			w.Header().Set("Retry-After", "1")
			writeReply(w, http.StatusTooManyRequests,
				"You're sending messages too quickly. Please wait a moment and try again.")
			return
		}
		next.ServeHTTP(w, r)
	})
}
