package middleware

import (
	"net/http"
	"strconv"
	"time"

	echo "github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

// RateLimitConfig config for the Redis-based per-IP limiter.
type RateLimitConfig struct {
	Redis          *redis.Client
	Max            int           // requests per window; <= 0 disables the limit
	KeyPrefix      string        // e.g. "rl:ip:"
	Window         time.Duration // e.g. 1m
	RetryAfterHint bool          // set Retry-After header when limited
	// OnLimit renders the rejection. Defaults to a 429 JSON error.
	OnLimit echo.HandlerFunc
}

// RateLimitMiddleware applies a fixed-window limit per client IP. Redis
// errors let the request through.
func RateLimitMiddleware(cfg RateLimitConfig) echo.MiddlewareFunc {
	if cfg.Window <= 0 {
		cfg.Window = time.Minute
	}
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = "rl:ip:"
	}
	if cfg.OnLimit == nil {
		cfg.OnLimit = func(c echo.Context) error {
			return c.JSON(http.StatusTooManyRequests, map[string]string{"error": "rate limited"})
		}
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if cfg.Max <= 0 || cfg.Redis == nil {
				return next(c)
			}

			// fixed-window key: rl:ip:{ip}:{window index}
			now := time.Now()
			slot := now.UnixNano() / int64(cfg.Window)
			key := cfg.KeyPrefix + c.RealIP() + ":" + strconv.FormatInt(slot, 10)

			ctx := c.Request().Context()
			pipe := cfg.Redis.Pipeline()
			cnt := pipe.Incr(ctx, key)
			pipe.Expire(ctx, key, cfg.Window*2)
			if _, err := pipe.Exec(ctx); err != nil {
				return next(c)
			}

			if cnt.Val() > int64(cfg.Max) {
				if cfg.RetryAfterHint {
					remain := cfg.Window - time.Duration(now.UnixNano()%int64(cfg.Window))
					secs := int((remain + time.Second - 1) / time.Second)
					c.Response().Header().Set("Retry-After", strconv.Itoa(secs))
				}
				return cfg.OnLimit(c)
			}
			return next(c)
		}
	}
}
