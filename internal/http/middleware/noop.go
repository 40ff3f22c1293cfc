package middleware

import "github.com/gofiber/fiber/v2"

// Noop passes the request through unchanged. It stands in for optional
// middleware slots when a feature such as tracing is disabled.
func Noop() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.Next()
	}
}
