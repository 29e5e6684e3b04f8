package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tayloredroots/salon-api/pkg/logging"
)

// RedisRateLimit enforces a fixed-window per-IP limit backed by Redis, so the
// cap holds across replicas. Intended for the expensive try-on endpoint; the
// in-process token bucket in RateLimit covers everything else. Fails open on
// Redis errors: a limiter outage must not take the endpoint down with it.
func RedisRateLimit(client *redis.Client, prefix string, limit int, window time.Duration, logger *logging.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return func(next http.Handler) http.Handler {
		if client == nil || limit <= 0 || window <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := r.RemoteAddr
			if xri := r.Header.Get("X-Real-Ip"); xri != "" {
				ip = xri
			}
			key := fmt.Sprintf("%s:%s:%d", prefix, ip, time.Now().Unix()/int64(window.Seconds()))

			count, err := client.Incr(r.Context(), key).Result()
			if err != nil {
				logger.Warn("redis rate limiter unavailable, allowing request", "error", err)
				next.ServeHTTP(w, r)
				return
			}
			if count == 1 {
				client.Expire(r.Context(), key, window)
			}
			if count > int64(limit) {
				w.Header().Set("Retry-After", fmt.Sprintf("%d", int(window.Seconds())))
				http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
