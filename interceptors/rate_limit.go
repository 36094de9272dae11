package interceptors

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/companieshouse/chs.go/log"
	"github.com/finmarkets/checkout.api.finmarkets.io/utils"
	"github.com/go-redis/redis/v8"
)

// RateLimiter is a Redis backed fixed-window limiter applied to the discount
// endpoints, keyed on client IP. A nil RateLimiter passes every request
// through, so the service still works with no Redis configured.
type RateLimiter struct {
	client   *redis.Client
	requests int
	window   time.Duration
}

// NewRateLimiter connects to Redis and returns a limiter allowing the given
// number of requests per minute
func NewRateLimiter(redisURL string, requestsPerMin int) (*RateLimiter, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL for rate limiter: %v", err)
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis for rate limiting: %v", err)
	}

	return &RateLimiter{
		client:   client,
		requests: requestsPerMin,
		window:   time.Minute,
	}, nil
}

// RateLimitIntercept limits requests per client IP. Redis failures allow the
// request through: an unavailable limiter must not block checkout.
func (rl *RateLimiter) RateLimitIntercept(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if rl == nil {
			next.ServeHTTP(w, r)
			return
		}

		key := fmt.Sprintf("rate_limit:discount:%s", utils.ClientIP(r))

		count, err := rl.client.Incr(r.Context(), key).Result()
		if err != nil {
			log.ErrorR(r, fmt.Errorf("rate limit check error: [%v]", err))
			next.ServeHTTP(w, r)
			return
		}
		if count == 1 {
			rl.client.Expire(r.Context(), key, rl.window)
		}

		if count > int64(rl.requests) {
			log.InfoR(r, "rate limit exceeded", log.Data{"key": key})
			utils.WriteJSONWithStatus(w, r, utils.NewMessageResponse("too many requests, please slow down"), http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// Close closes the underlying Redis connection
func (rl *RateLimiter) Close() error {
	if rl == nil {
		return nil
	}
	return rl.client.Close()
}
