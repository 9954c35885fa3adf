package mw

import (
	"encoding/json"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/MrSnakeDoc/myshortcuts/internal/utils"
)

const sweepEvery = time.Minute

// RateLimitConfig sizes the token bucket each client IP gets.
type RateLimitConfig struct {
	Burst      int              // bucket capacity
	PerMinute  int              // tokens refilled per minute
	MaxClients int              // tracked IPs before idle buckets are evicted early (0 = no cap)
	IdleTTL    time.Duration    // evict buckets untouched for this long (default 15m)
	TrustProxy bool             // resolve the client IP from proxy headers
	Now        func() time.Time // defaults to time.Now
}

type clientBucket struct {
	tokens  float64
	updated time.Time
}

type rateLimiter struct {
	cfg       RateLimitConfig
	perSec    float64
	mu        sync.Mutex
	clients   map[string]*clientBucket
	nextSweep time.Time
}

func newRateLimiter(cfg RateLimitConfig) *rateLimiter {
	cfg.Burst = max(cfg.Burst, 1)
	cfg.PerMinute = max(cfg.PerMinute, 1)
	if cfg.IdleTTL <= 0 {
		cfg.IdleTTL = 15 * time.Minute
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	return &rateLimiter{
		cfg:       cfg,
		perSec:    float64(cfg.PerMinute) / 60,
		clients:   make(map[string]*clientBucket),
		nextSweep: cfg.Now().Add(sweepEvery),
	}
}

// take spends one token for ip. When the bucket is empty it reports how
// long until the next token.
func (l *rateLimiter) take(ip string, now time.Time) (remaining int, wait time.Duration, ok bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !now.Before(l.nextSweep) || (l.cfg.MaxClients > 0 && len(l.clients) >= l.cfg.MaxClients) {
		l.evictIdle(now)
	}

	b, found := l.clients[ip]
	if !found {
		b = &clientBucket{tokens: float64(l.cfg.Burst), updated: now}
		l.clients[ip] = b
	}

	if elapsed := now.Sub(b.updated).Seconds(); elapsed > 0 {
		b.tokens = math.Min(float64(l.cfg.Burst), b.tokens+elapsed*l.perSec)
	}
	b.updated = now

	if b.tokens < 1 {
		secs := max(math.Ceil((1-b.tokens)/l.perSec), 1)
		return 0, time.Duration(secs) * time.Second, false
	}

	b.tokens--
	return int(b.tokens), 0, true
}

func (l *rateLimiter) evictIdle(now time.Time) {
	for ip, b := range l.clients {
		if now.Sub(b.updated) > l.cfg.IdleTTL {
			delete(l.clients, ip)
		}
	}
	l.nextSweep = now.Add(sweepEvery)
}

// RateLimit answers 429 with Retry-After once a client emptied its bucket.
// Every call builds an independent limiter, so routes do not share budgets.
func RateLimit(cfg RateLimitConfig) func(http.Handler) http.Handler {
	l := newRateLimiter(cfg)
	limit := strconv.Itoa(l.cfg.Burst)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			remaining, wait, ok := l.take(utils.ClientIP(r, l.cfg.TrustProxy), l.cfg.Now())

			h := w.Header()
			h.Set("X-RateLimit-Limit", limit)
			h.Set("X-RateLimit-Remaining", strconv.Itoa(remaining))

			if !ok {
				h.Set("Retry-After", strconv.Itoa(int(wait/time.Second)))
				h.Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				_ = json.NewEncoder(w).Encode(map[string]string{
					"error":   "rate_limited",
					"message": "too many requests, retry later",
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
