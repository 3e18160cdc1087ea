// Package health exposes liveness and readiness probes.
package health

import (
	"context"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/noah-isme/backend-cjenovnik/internal/common"
)

// Pinger probes a single dependency.
type Pinger func(ctx context.Context) error

// PoolPinger probes the PostgreSQL pool.
func PoolPinger(pool *pgxpool.Pool) Pinger {
	return func(ctx context.Context) error { return pool.Ping(ctx) }
}

// RedisPinger probes the Redis client.
func RedisPinger(client *redis.Client) Pinger {
	return func(ctx context.Context) error { return client.Ping(ctx).Err() }
}

// Handler serves the health endpoints.
type Handler struct {
	DB      Pinger
	Redis   Pinger
	Timeout time.Duration
}

// Live reports process liveness.
func (h Handler) Live(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// Ready reports readiness based on dependency probes.
func (h Handler) Ready(w http.ResponseWriter, r *http.Request) {
	timeout := h.Timeout
	if timeout <= 0 {
		timeout = 500 * time.Millisecond
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeout)
	defer cancel()

	status := map[string]string{
		"db":    probe(ctx, h.DB),
		"redis": probe(ctx, h.Redis),
	}
	code := http.StatusOK
	for _, s := range status {
		if s != "ok" {
			code = http.StatusServiceUnavailable
			break
		}
	}
	common.JSON(w, code, status)
}

func probe(ctx context.Context, p Pinger) string {
	if p == nil {
		return "unconfigured"
	}
	if err := p(ctx); err != nil {
		return err.Error()
	}
	return "ok"
}
