package middleware

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Fixed-window counter shared across instances. The first hit in a window
// creates the key with the window's TTL; every later hit increments it.
var fixedWindowScript = redis.NewScript(`
local hits = redis.call("INCR", KEYS[1])
if hits == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return hits
`)

const (
	redisKeyPrefix    = "ratelimit:"
	redisCheckTimeout = 250 * time.Millisecond
)

type RedisLimiter struct {
	client *redis.Client
	logger zerolog.Logger
}

var _ Limiter = (*RedisLimiter)(nil)

func NewRedisLimiter(client *redis.Client, logger zerolog.Logger) *RedisLimiter {
	if client == nil {
		return nil
	}
	return &RedisLimiter{client: client, logger: logger}
}

// Allow counts the hit and reports whether it stays within limit. Redis
// errors fail open.
func (l *RedisLimiter) Allow(key string, limit int, window time.Duration) bool {
	if l == nil || l.client == nil || key == "" || limit <= 0 || window <= 0 {
		return true
	}
	ttl := window.Milliseconds()
	if ttl < 1 {
		ttl = 1
	}
	ctx, cancel := context.WithTimeout(context.Background(), redisCheckTimeout)
	defer cancel()
	hits, err := fixedWindowScript.Run(ctx, l.client, []string{redisKeyPrefix + key}, ttl).Int64()
	if err != nil {
		l.logger.Warn().Err(err).Str("key", key).Msg("rate limit check failed, allowing request")
		return true
	}
	return hits <= int64(limit)
}
