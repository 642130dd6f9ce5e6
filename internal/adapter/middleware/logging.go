package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// RequestLogger logs one line per request once the handler has finished.
func RequestLogger(log logrus.FieldLogger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			started := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			fields := logrus.Fields{
				"method":      c.Request().Method,
				"path":        c.Path(),
				"status":      c.Response().Status,
				"duration_ms": time.Since(started).Milliseconds(),
			}
			if a, ok := ActorFrom(c); ok {
				fields["user_id"] = a.UserID
			}
			entry := log.WithFields(fields)
			if c.Response().Status >= 500 {
				entry.Warn("http request")
			} else {
				entry.Info("http request")
			}
			return nil
		}
	}
}
