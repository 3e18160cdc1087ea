package catalog

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache is a thin JSON read-through cache over Redis. A nil cache or a nil
// client disables caching entirely.
type Cache struct {
	R   *redis.Client
	TTL time.Duration
}

// NewCache builds a catalog cache.
func NewCache(r *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Cache{R: r, TTL: ttl}
}

// Get loads a cached value into dst, reporting whether it was present.
func (c *Cache) Get(ctx context.Context, key string, dst any) bool {
	if c == nil || c.R == nil {
		return false
	}
	raw, err := c.R.Get(ctx, key).Result()
	if err != nil {
		return false
	}
	return json.Unmarshal([]byte(raw), dst) == nil
}

// Set stores a value under key. Encoding or write failures are ignored since
// the cache is advisory.
func (c *Cache) Set(ctx context.Context, key string, v any) {
	if c == nil || c.R == nil {
		return
	}
	payload, err := json.Marshal(v)
	if err != nil {
		return
	}
	c.R.Set(ctx, key, payload, c.TTL)
}
