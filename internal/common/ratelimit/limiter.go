// internal/common/ratelimit/limiter.go
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"simmer-assistant/internal/common/logger"

	"github.com/redis/go-redis/v9"
)

// Limiter enforces a fixed request quota per client key per rolling window.
// Counters live in Redis with the window as TTL, so the reset lifecycle is
// the key expiry; nothing is held in process memory.
type Limiter struct {
	client   *redis.Client
	requests int
	window   time.Duration
	logger   logger.Logger
}

// New creates a Limiter allowing `requests` per `window` for each key.
func New(client *redis.Client, requests int, window time.Duration, log logger.Logger) *Limiter {
	return &Limiter{
		client:   client,
		requests: requests,
		window:   window,
		logger:   log.WithFields(map[string]interface{}{"component": "ratelimit"}),
	}
}

// Allow reports whether the client identified by key may proceed. When the
// quota is exhausted it returns the remaining window as retryAfter.
//
// The limiter fails open: if Redis is unreachable the request is allowed and
// the error logged, so the assistants never hard-fail on limiter trouble.
func (l *Limiter) Allow(ctx context.Context, key string) (allowed bool, retryAfter time.Duration, err error) {
	redisKey := fmt.Sprintf("ratelimit:%s", key)

	count, err := l.client.Incr(ctx, redisKey).Result()
	if err != nil {
		l.logger.Warn("rate limit check failed, allowing request", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
		return true, 0, err
	}

	if count == 1 {
		if err := l.client.Expire(ctx, redisKey, l.window).Err(); err != nil {
			l.logger.Warn("rate limit expire failed", map[string]interface{}{
				"key":   key,
				"error": err.Error(),
			})
		}
	}

	if count > int64(l.requests) {
		ttl, ttlErr := l.client.TTL(ctx, redisKey).Result()
		if ttlErr != nil || ttl < 0 {
			ttl = l.window
		}
		return false, ttl, nil
	}

	return true, 0, nil
}
