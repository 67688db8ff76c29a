package middleware

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// RateLimiter is a fixed-window request limiter backed by Redis, applied to
// the generation endpoint to keep a single client from burning through the
// upstream model quota. Windows are one minute, keyed per authenticated
// user when available, per remote address otherwise.
type RateLimiter struct {
	client *redis.Client
	limit  int
}

// NewRateLimiter creates a limiter allowing requestsPerMinute per client.
func NewRateLimiter(client *redis.Client, requestsPerMinute int) *RateLimiter {
	return &RateLimiter{client: client, limit: requestsPerMinute}
}

// Handler wraps next with the rate limit check. Redis being unreachable
// fails open: a generation request is never dropped because the limiter's
// backing store is down.
func (rl *RateLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if rl.client == nil || rl.limit <= 0 {
			next.ServeHTTP(w, r)
			return
		}

		key := fmt.Sprintf("ratelimit:%s:%d", clientKey(r), time.Now().Unix()/60)

		count, err := rl.client.Incr(r.Context(), key).Result()
		if err != nil {
			slog.Warn("Rate limiter unavailable, allowing request", "error", err.Error())
			next.ServeHTTP(w, r)
			return
		}
		if count == 1 {
			rl.client.Expire(r.Context(), key, time.Minute)
		}

		if count > int64(rl.limit) {
			w.Header().Set("Retry-After", strconv.Itoa(60-int(time.Now().Unix()%60)))
			http.Error(w, "Too Many Requests", http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func clientKey(r *http.Request) string {
	if userID, ok := GetUserID(r.Context()); ok {
		return "user:" + userID
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return "addr:" + r.RemoteAddr
	}
	return "addr:" + host
}
