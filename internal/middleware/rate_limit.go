package middleware

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/deppfellow/finance-api/internal/errs"
	"github.com/deppfellow/finance-api/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

const rateLimitKeyPrefix = "ratelimit:"

// RateLimitMiddleware is a fixed-window limiter keyed by client IP and
// counted in Redis, so every instance shares the window.
type RateLimitMiddleware struct {
	server *server.Server
}

func NewRateLimitMiddleware(s *server.Server) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		server: s,
	}
}

func rateLimitKey(ip string) string {
	return rateLimitKeyPrefix + ip
}

// hit counts one request in the client's window and returns the count and
// the time left in the window.
func hit(ctx context.Context, client *redis.Client, key string, window time.Duration) (int64, time.Duration, error) {
	var incr *redis.IntCmd
	var ttl *redis.DurationCmd

	_, err := client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		pipe.ExpireNX(ctx, key, window)
		ttl = pipe.PTTL(ctx, key)
		return nil
	})
	if err != nil {
		return 0, 0, fmt.Errorf("counting request: %w", err)
	}

	return incr.Val(), ttl.Val(), nil
}

// Limit answers 429 once a client exceeds the configured requests per
// window. When Redis is unavailable requests are let through.
func (r *RateLimitMiddleware) Limit() echo.MiddlewareFunc {
	cfg := r.server.Config.RateLimit

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		if !cfg.IsEnabled() || r.server.Redis == nil {
			return next
		}

		return func(c echo.Context) error {
			count, remaining, err := hit(c.Request().Context(), r.server.Redis, rateLimitKey(c.RealIP()), cfg.Window)
			if err != nil {
				GetLogger(c).Warn().Err(err).Msg("rate limiter unavailable, allowing request")
				return next(c)
			}

			left := int64(cfg.Requests) - count
			if left < 0 {
				left = 0
			}
			c.Response().Header().Set("X-RateLimit-Limit", strconv.Itoa(cfg.Requests))
			c.Response().Header().Set("X-RateLimit-Remaining", strconv.FormatInt(left, 10))

			if count > int64(cfg.Requests) {
				if remaining > 0 {
					c.Response().Header().Set("Retry-After", strconv.Itoa(int(remaining.Round(time.Second).Seconds())))
				}
				r.RecordRateLimitHit(c.Path())
				return errs.NewTooManyRequestsError("Too many requests, try again later")
			}

			return next(c)
		}
	}
}

// RecordRateLimitHit records a RateLimitHit event in New Relic.
func (r *RateLimitMiddleware) RecordRateLimitHit(endpoint string) {
	r.server.LoggerService.RecordCustomEvent("RateLimitHit", map[string]interface{}{
		"endpoint": endpoint,
	})
}
