package middleware

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
)

// RequestLogger logs one line per request with method, path, status and
// duration. The SSE stream endpoint is skipped, its requests stay open for
// the whole session and would only log on disconnect.
func RequestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Path() == "/api/rankings/stream" {
			return c.Next()
		}
		start := time.Now()
		err := c.Next()
		log.Printf("%s %s -> %d (%s)", c.Method(), c.Path(), c.Response().StatusCode(), time.Since(start).Round(time.Millisecond))
		return err
	}
}
