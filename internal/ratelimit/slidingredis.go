// Package ratelimit throttles expensive plan computations per client.
package ratelimit

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// SlidingWindow counts events per key in a rolling window using a Redis
// sorted set scored by nanosecond timestamps.
type SlidingWindow struct {
	R      *redis.Client
	Prefix string
	Window time.Duration
	Max    int
}

// NewSlidingWindow builds a limiter. Non-positive window or max disables it.
func NewSlidingWindow(r *redis.Client, prefix string, window time.Duration, max int) *SlidingWindow {
	return &SlidingWindow{R: r, Prefix: prefix, Window: window, Max: max}
}

// Allow records one event for key and reports whether it fits the window,
// how many events remain and when the window resets.
func (l *SlidingWindow) Allow(ctx context.Context, key string) (allowed bool, remaining int, reset time.Time, err error) {
	now := time.Now()
	reset = now.Add(l.Window)
	if l == nil || l.R == nil || l.Max <= 0 || l.Window <= 0 {
		return true, l.Max, reset, nil
	}

	redisKey := l.Prefix + key
	cutoff := strconv.FormatInt(now.Add(-l.Window).UnixNano(), 10)

	pipe := l.R.TxPipeline()
	pipe.ZRemRangeByScore(ctx, redisKey, "-inf", cutoff)
	pipe.ZAdd(ctx, redisKey, redis.Z{Score: float64(now.UnixNano()), Member: uuid.NewString()})
	countCmd := pipe.ZCard(ctx, redisKey)
	pipe.Expire(ctx, redisKey, l.Window)
	if _, err = pipe.Exec(ctx); err != nil {
		return false, 0, reset, err
	}

	current := int(countCmd.Val())
	remaining = l.Max - current
	if remaining < 0 {
		remaining = 0
	}
	return current <= l.Max, remaining, reset, nil
}
