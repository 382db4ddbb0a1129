package middleware

import (
	"time"

	applogger "OptionFlow/pkg/logger"

	"github.com/labstack/echo/v4"
)

// RequestLogging logs each request with its status and latency.
func RequestLogging(log *applogger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			req := c.Request()
			res := c.Response()
			log.Info("http request",
				applogger.String("method", req.Method),
				applogger.String("uri", req.RequestURI),
				applogger.String("remote", req.RemoteAddr),
				applogger.Int("status", res.Status),
				applogger.Duration("took", time.Since(start)),
			)

			return err
		}
	}
}
