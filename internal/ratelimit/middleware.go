package ratelimit

import (
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/noah-isme/backend-cjenovnik/internal/common"
)

// ClientKey derives a limiter key from the request's client address.
func ClientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// Middleware enforces the sliding window per client before delegating.
// Limiter failures fail open so a Redis outage never blocks plan requests.
func Middleware(limiter *SlidingWindow, logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			allowed, remaining, resetAt, err := limiter.Allow(r.Context(), ClientKey(r))
			if err != nil {
				logger.Warn().Err(err).Msg("rate limiter unavailable")
				next.ServeHTTP(w, r)
				return
			}

			headers := w.Header()
			headers.Set("X-RateLimit-Limit", strconv.Itoa(limiter.Max))
			headers.Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
			headers.Set("X-RateLimit-Reset", strconv.FormatInt(resetAt.Unix(), 10))

			if !allowed {
				retryAfter := int(time.Until(resetAt).Seconds())
				if retryAfter < 0 {
					retryAfter = 0
				}
				headers.Set("Retry-After", strconv.Itoa(retryAfter))
				common.JSONError(w, http.StatusTooManyRequests, "RATE_LIMITED", "too many optimization requests", nil)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
