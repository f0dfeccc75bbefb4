// Package middleware provides HTTP middleware for the Mesto API.
// ratelimit.go implements per-IP fixed-window rate limiting, with counters
// in Redis when it is configured and in process memory otherwise. Designed
// for the signup and signin endpoints.
package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

// Limiter decides whether one more request for key fits in the window.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// LimiterFactory builds a named limiter allowing maxRequests per window.
// The name keeps counters of different routes apart.
type LimiterFactory func(name string, maxRequests int, window time.Duration) Limiter

// RateLimit returns middleware that limits requests per client IP using l.
// Returns 429 when exceeded. A limiter error lets the request through: the
// limiter is a brake, not an auth check.
func RateLimit(l Limiter) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			allowed, err := l.Allow(c.Request().Context(), c.RealIP())
			if err != nil {
				slog.Warn("rate limiter unavailable", slog.Any("error", err))
				return next(c)
			}
			if !allowed {
				return c.JSON(http.StatusTooManyRequests, map[string]string{
					"message": "Rate limit exceeded. Please try again later.",
				})
			}
			return next(c)
		}
	}
}

// --- In-memory limiter ---

// rateLimitEntry tracks request counts for a single IP within a time window.
type rateLimitEntry struct {
	count       int
	windowStart time.Time
}

// MemoryLimiter keeps fixed-window counters in a map. Counters are per
// process, so each replica enforces its own limit.
type MemoryLimiter struct {
	mu          sync.Mutex
	entries     map[string]*rateLimitEntry
	maxRequests int
	window      time.Duration
	now         func() time.Time
}

// NewMemoryLimiter creates an in-memory limiter.
func NewMemoryLimiter(maxRequests int, window time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		entries:     make(map[string]*rateLimitEntry),
		maxRequests: maxRequests,
		window:      window,
		now:         time.Now,
	}
}

// Allow implements Limiter. Expired entries are swept on the way.
func (m *MemoryLimiter) Allow(_ context.Context, key string) (bool, error) {
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.entries[key]
	if !exists || now.Sub(entry.windowStart) > m.window {
		m.sweep(now)
		m.entries[key] = &rateLimitEntry{count: 1, windowStart: now}
		return true, nil
	}

	entry.count++
	return entry.count <= m.maxRequests, nil
}

// sweep drops entries whose window ended long ago. Caller holds mu.
func (m *MemoryLimiter) sweep(now time.Time) {
	for key, entry := range m.entries {
		if now.Sub(entry.windowStart) > m.window*2 {
			delete(m.entries, key)
		}
	}
}

// NewMemoryLimiterFactory returns a factory of independent memory limiters.
func NewMemoryLimiterFactory() LimiterFactory {
	return func(_ string, maxRequests int, window time.Duration) Limiter {
		return NewMemoryLimiter(maxRequests, window)
	}
}

// --- Redis limiter ---

// RedisLimiter counts requests with INCR on a key that expires with the
// window, so all replicas share one limit.
type RedisLimiter struct {
	client      redis.Cmdable
	keyPrefix   string
	maxRequests int
	window      time.Duration
}

// NewRedisLimiter creates a Redis-backed limiter. Keys are
// "ratelimit:<name>:<client key>".
func NewRedisLimiter(client redis.Cmdable, name string, maxRequests int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{
		client:      client,
		keyPrefix:   "ratelimit:" + name + ":",
		maxRequests: maxRequests,
		window:      window,
	}
}

// incrWindowScript bumps the counter and starts the window TTL on the first
// hit, atomically, so a counter is never left without an expiry.
var incrWindowScript = redis.NewScript(`
	local count = redis.call('INCR', KEYS[1])
	if count == 1 then
		redis.call('PEXPIRE', KEYS[1], ARGV[1])
	end
	return count
`)

// Allow implements Limiter.
func (r *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	redisKey := r.keyPrefix + key

	count, err := incrWindowScript.Run(ctx, r.client, []string{redisKey}, r.window.Milliseconds()).Int64()
	if err != nil {
		return false, fmt.Errorf("redis rate limit %s: %w", redisKey, err)
	}

	return count <= int64(r.maxRequests), nil
}

// NewRedisLimiterFactory returns a factory of limiters sharing client.
func NewRedisLimiterFactory(client redis.Cmdable) LimiterFactory {
	return func(name string, maxRequests int, window time.Duration) Limiter {
		return NewRedisLimiter(client, name, maxRequests, window)
	}
}
