package middleware

import (
	"context"
	"fmt"
	"go-portfolio-backend/internal/delivery/http/response"
	"go-portfolio-backend/pkg/apperror"
	"go-portfolio-backend/pkg/redis"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	msgRateLimited = "عدد الطلبات كبير، يرجى المحاولة بعد قليل"
	sweepInterval  = 5 * time.Minute
)

// RateLimitConfig is a fixed-window budget per key.
type RateLimitConfig struct {
	Limit  int
	Window time.Duration
	// KeyFunc picks the bucket of a request. Defaults to the client IP.
	KeyFunc   func(*gin.Context) string
	KeyPrefix string
	// FailClosed answers 503 instead of falling back to memory when Redis errors.
	FailClosed bool
}

// windowCounter counts hits of key in the current window.
type windowCounter interface {
	Hit(ctx context.Context, key string, window time.Duration) (count int, resetAt time.Time, err error)
}

// fixedWindowScript increments KEYS[1], arms its TTL on the first hit and returns {count, ttl}.
var fixedWindowScript = goredis.NewScript(`
local count = redis.call('INCR', KEYS[1])
if count == 1 then
    redis.call('EXPIRE', KEYS[1], ARGV[1])
end
return {count, redis.call('TTL', KEYS[1])}
`)

var (
	_ windowCounter = redisCounter{}
	_ windowCounter = (*memoryCounter)(nil)
)

type redisCounter struct {
	client *goredis.Client
}

func (r redisCounter) Hit(ctx context.Context, key string, d time.Duration) (int, time.Time, error) {
	ttl := max(int(d.Seconds()), 1)

	vals, err := fixedWindowScript.Run(ctx, r.client, []string{key}, ttl).Int64Slice()
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("rate limit script: %w", err)
	}
	if len(vals) != 2 {
		return 0, time.Time{}, fmt.Errorf("rate limit script: got %d values", len(vals))
	}
	return int(vals[0]), time.Now().Add(time.Duration(vals[1]) * time.Second), nil
}

type bucket struct {
	count   int
	resetAt time.Time
}

// memoryCounter is the single-instance fallback. Expired buckets are swept on access.
type memoryCounter struct {
	mu        sync.Mutex
	buckets   map[string]*bucket
	lastSweep time.Time
	now       func() time.Time
}

func newMemoryCounter() *memoryCounter {
	return &memoryCounter{buckets: map[string]*bucket{}, now: time.Now}
}

func (m *memoryCounter) Hit(_ context.Context, key string, d time.Duration) (int, time.Time, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if now.Sub(m.lastSweep) > sweepInterval {
		for k, w := range m.buckets {
			if now.After(w.resetAt) {
				delete(m.buckets, k)
			}
		}
		m.lastSweep = now
	}

	w, ok := m.buckets[key]
	if !ok || now.After(w.resetAt) {
		w = &bucket{resetAt: now.Add(d)}
		m.buckets[key] = w
	}
	w.count++
	return w.count, w.resetAt, nil
}

// fallbackCounter backs every middleware instance while Redis is absent.
var fallbackCounter = newMemoryCounter()

func clientIP(c *gin.Context) string {
	return c.ClientIP()
}

// DefaultRateLimitConfig applies to every API route.
func DefaultRateLimitConfig(limit int, window time.Duration) RateLimitConfig {
	return RateLimitConfig{
		Limit:     limit,
		Window:    window,
		KeyPrefix: "rl:ip:",
		KeyFunc:   clientIP,
	}
}

// UploadRateLimitConfig is the stricter budget of the authoring routes.
func UploadRateLimitConfig(limit int, window time.Duration) RateLimitConfig {
	return RateLimitConfig{
		Limit:     limit,
		Window:    window,
		KeyPrefix: "rl:write:",
		KeyFunc:   clientIP,
	}
}

// RateLimitMiddleware enforces config through Redis when connected, in memory otherwise.
// A Limit of zero or less disables it.
func RateLimitMiddleware(config RateLimitConfig) gin.HandlerFunc {
	if config.KeyFunc == nil {
		config.KeyFunc = clientIP
	}

	return func(c *gin.Context) {
		if config.Limit <= 0 {
			c.Next()
			return
		}

		key := config.KeyPrefix + config.KeyFunc(c)
		count, resetAt, err := hit(c.Request.Context(), key, config)
		if err != nil {
			response.Error(c, http.StatusServiceUnavailable, apperror.MsgInternal)
			c.Abort()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(config.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(max(config.Limit-count, 0)))
		c.Header("X-RateLimit-Reset", resetAt.Format(time.RFC3339))

		if count > config.Limit {
			retryAfter := max(int(time.Until(resetAt).Seconds()), 1)
			c.Header("Retry-After", strconv.Itoa(retryAfter))

			log.Warn().Str("ip", c.ClientIP()).Str("path", c.FullPath()).Str("prefix", config.KeyPrefix).Msg("rate limit triggered")
			response.Error(c, http.StatusTooManyRequests, msgRateLimited)
			c.Abort()
			return
		}

		c.Next()
	}
}

func hit(ctx context.Context, key string, config RateLimitConfig) (int, time.Time, error) {
	client := redis.Client()
	if client == nil {
		return fallbackCounter.Hit(ctx, key, config.Window)
	}

	count, resetAt, err := redisCounter{client: client}.Hit(ctx, key, config.Window)
	if err == nil {
		return count, resetAt, nil
	}

	log.Warn().Err(err).Str("key", key).Msg("rate limit store unavailable")
	if config.FailClosed {
		return 0, time.Time{}, err
	}
	return fallbackCounter.Hit(ctx, key, config.Window)
}
