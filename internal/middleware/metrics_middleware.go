package middleware

import (
	"time"

	"learnDesk/pkg/metrics"

	"github.com/labstack/echo/v4"
)

// Metrics records per-route request latency.
func Metrics() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			metrics.HTTPRequestLatency.
				WithLabelValues(c.Path(), c.Request().Method).
				Observe(time.Since(start).Seconds())
			return err
		}
	}
}
