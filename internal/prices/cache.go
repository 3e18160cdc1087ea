package prices

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Source serves latest prices through a Redis read-through cache.
type Source struct {
	Q   Querier
	R   *redis.Client
	TTL time.Duration
}

// NewSource builds a cached price source. A nil client disables caching.
func NewSource(q Querier, r *redis.Client, ttl time.Duration) *Source {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &Source{Q: q, R: r, TTL: ttl}
}

// ListLatestPrices returns latest prices for the requested product codes,
// consulting Redis first. The cache key is derived from the sorted code set
// so equivalent baskets share entries. Cache failures fall through to the
// database.
func (s *Source) ListLatestPrices(ctx context.Context, codes []string) ([]Row, error) {
	if len(codes) == 0 {
		return nil, nil
	}
	key := cacheKey(codes)
	if s.R != nil {
		if raw, err := s.R.Get(ctx, key).Result(); err == nil {
			var cached []Row
			if json.Unmarshal([]byte(raw), &cached) == nil {
				return cached, nil
			}
		}
	}

	rows, err := s.Q.ListLatestPrices(ctx, codes)
	if err != nil {
		return nil, err
	}
	if s.R != nil {
		if payload, err := json.Marshal(rows); err == nil {
			s.R.Set(ctx, key, payload, s.TTL)
		}
	}
	return rows, nil
}

// Invalidate drops the cache entry covering the given code set.
func (s *Source) Invalidate(ctx context.Context, codes []string) {
	if s.R == nil || len(codes) == 0 {
		return
	}
	s.R.Del(ctx, cacheKey(codes))
}

func cacheKey(codes []string) string {
	sorted := make([]string, len(codes))
	copy(sorted, codes)
	sort.Strings(sorted)
	sum := sha256.Sum256([]byte(strings.Join(sorted, "|")))
	return "prices:latest:" + hex.EncodeToString(sum[:8])
}
