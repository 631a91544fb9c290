package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisLimiter is a fixed-window per-key rate limiter shared between
// instances through Redis. Redis errors fail open.
type RedisLimiter struct {
	client  *redis.Client
	prefix  string
	limit   int64
	window  time.Duration
	timeout time.Duration
}

// NewRedisLimiter connects to Redis and returns a limiter allowing limit
// requests per key in each window.
func NewRedisLimiter(ctx context.Context, opts *redis.Options, limit int, window time.Duration) (*RedisLimiter, error) {
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	if window <= 0 {
		window = time.Minute
	}

	return &RedisLimiter{
		client:  client,
		prefix:  "taskboard:ratelimit:",
		limit:   int64(limit),
		window:  window,
		timeout: 250 * time.Millisecond,
	}, nil
}

// Allow reports whether key is still under the limit for the current window.
func (rl *RedisLimiter) Allow(key string) bool {
	if rl.limit <= 0 {
		return true
	}

	ctx, cancel := context.WithTimeout(context.Background(), rl.timeout)
	defer cancel()

	// SET NX EX starts the window with its TTL and INCR keeps that TTL, so a
	// key can never be left without an expiry.
	redisKey := rl.prefix + key
	var incr *redis.IntCmd
	_, err := rl.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.SetNX(ctx, redisKey, 0, rl.window)
		incr = pipe.Incr(ctx, redisKey)
		return nil
	})
	if err != nil {
		slog.Error("redis rate limiter", "error", err)
		return true
	}
	return incr.Val() <= rl.limit
}

// Close releases the Redis connection pool.
func (rl *RedisLimiter) Close() error {
	return rl.client.Close()
}
