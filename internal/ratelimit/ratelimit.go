// Package ratelimit limits requests per client with a fixed window counter
// kept in Redis, so the limit holds across API instances.
package ratelimit

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "ratelimit:"

// Limiter counts requests per key in windows of a fixed length
type Limiter struct {
	redis  redis.Cmdable
	limit  int
	window time.Duration
}

// NewLimiter creates a limiter allowing limit requests per window
func NewLimiter(client redis.Cmdable, limit int, window time.Duration) *Limiter {
	return &Limiter{
		redis:  client,
		limit:  limit,
		window: window,
	}
}

// Allow records a request for key and reports whether it is within the
// limit, along with the requests left in the current window.
func (l *Limiter) Allow(ctx context.Context, key string) (bool, int, error) {
	key = keyPrefix + key

	n, err := l.redis.Incr(ctx, key).Result()
	if err != nil {
		return false, 0, fmt.Errorf("failed to increment rate limit: %w", err)
	}

	if n == 1 {
		if err := l.redis.Expire(ctx, key, l.window).Err(); err != nil {
			return false, 0, fmt.Errorf("failed to set rate limit window: %w", err)
		}
	}

	count := int(n)
	return count <= l.limit, max(l.limit-count, 0), nil
}

// Middleware limits requests by client IP. Redis failures let the request
// through.
func (l *Limiter) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ok, remaining, err := l.Allow(c.Request().Context(), c.RealIP())
			if err != nil {
				c.Logger().Errorf("rate limit: %v", err)
				return next(c)
			}

			h := c.Response().Header()
			h.Set("X-RateLimit-Limit", strconv.Itoa(l.limit))
			h.Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
			if !ok {
				h.Set("Retry-After", strconv.Itoa(int(l.window.Seconds())))
				return echo.NewHTTPError(http.StatusTooManyRequests)
			}
			return next(c)
		}
	}
}
