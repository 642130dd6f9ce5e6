package middleware

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// fixed window counter; returns 1 while the caller is under the limit
const rateLimitScript = `
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
if current > tonumber(ARGV[2]) then
  return 0
end
return 1
`

var rateLimit = redis.NewScript(rateLimitScript)

// RateLimit caps requests per client IP and route to limit per window.
// The limiter fails open when redis is unavailable.
func RateLimit(rdb redis.Scripter, limit int, window time.Duration, log logrus.FieldLogger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if rdb == nil || limit <= 0 || window <= 0 {
				return next(c)
			}
			key := rateLimitKey(c.Path(), c.RealIP())

			ctx, cancel := context.WithTimeout(c.Request().Context(), 250*time.Millisecond)
			defer cancel()
			allowed, err := rateLimit.Run(ctx, rdb, []string{key}, windowMillis(window), limit).Int64()
			if err != nil {
				log.WithError(err).WithField("key", key).Warn("rate limiter unavailable")
				return next(c)
			}
			if allowed != 1 {
				c.Response().Header().Set("Retry-After", retryAfter(window))
				return c.JSON(http.StatusTooManyRequests, errorBody{Error: "too many requests"})
			}
			return next(c)
		}
	}
}

func rateLimitKey(path, ip string) string {
	return "ratelimit:portal:" + path + ":" + strings.TrimSpace(ip)
}

func windowMillis(d time.Duration) int64 {
	if ms := d.Milliseconds(); ms > 0 {
		return ms
	}
	return 1
}

func retryAfter(d time.Duration) string {
	secs := int64(d / time.Second)
	if secs < 1 {
		secs = 1
	}
	return strconv.FormatInt(secs, 10)
}
