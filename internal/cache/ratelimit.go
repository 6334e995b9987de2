package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const rateLimitPrefix = "tickbox:ratelimit:"

// RateLimitResult describes one admission decision.
type RateLimitResult struct {
	Allowed    bool
	Limit      int64
	Remaining  int64
	RetryAfter time.Duration
}

// WindowLimiter admits at most limit hits per key in each fixed window.
type WindowLimiter struct {
	cache  *Cache
	scope  string
	limit  int64
	window time.Duration
	now    func() time.Time
}

// NewWindowLimiter returns a limiter namespaced by scope, e.g. "auth".
func NewWindowLimiter(c *Cache, scope string, limit int, window time.Duration) *WindowLimiter {
	if window <= 0 {
		window = time.Minute
	}
	return &WindowLimiter{
		cache:  c,
		scope:  scope,
		limit:  int64(limit),
		window: window,
		now:    time.Now,
	}
}

// Allow counts a hit for key and reports whether it fits the current window.
// The counter and its expiry are set in one MULTI/EXEC round trip.
func (l *WindowLimiter) Allow(ctx context.Context, key string) (RateLimitResult, error) {
	now := l.now()
	windowStart := now.Truncate(l.window)
	redisKey := l.key(key, windowStart)

	var incr *redis.IntCmd
	_, err := l.cache.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, redisKey)
		pipe.Expire(ctx, redisKey, l.window)
		return nil
	})
	if err != nil {
		return RateLimitResult{}, fmt.Errorf("count rate limit hit: %w", err)
	}

	count := incr.Val()
	result := RateLimitResult{
		Allowed:   count <= l.limit,
		Limit:     l.limit,
		Remaining: max(l.limit-count, 0),
	}
	if !result.Allowed {
		result.RetryAfter = windowStart.Add(l.window).Sub(now)
	}
	return result, nil
}

func (l *WindowLimiter) key(key string, windowStart time.Time) string {
	return fmt.Sprintf("%s%s:%s:%d", rateLimitPrefix, l.scope, hashKey(key), windowStart.Unix())
}

// hashKey keeps raw client addresses out of Redis.
func hashKey(key string) string {
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:8])
}
