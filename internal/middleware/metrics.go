package middleware

import (
	"time"

	"go-datamonitor/internal/metrics"

	"github.com/gofiber/fiber/v2"
)

// Metrics records count and latency per matched route.
func Metrics(m *metrics.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		// route pattern, not the raw path
		m.ObserveRequest(c.Method(), c.Route().Path, status, time.Since(start).Seconds())
		return err
	}
}
