// Package middleware holds the fiber middleware mounted in front of the API.
package middleware

import (
	"time"

	fiber "github.com/gofiber/fiber/v2"

	log "github.com/celestiaorg/intakeflow/internal/logger"
)

// Logger returns a middleware that logs HTTP requests
func Logger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		// Continue chain
		err := c.Next()
		if err != nil {
			// Let the app error handler write the response so the status is final
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		latency := time.Since(start)

		log.InfoWithFields("Request", map[string]interface{}{
			"status":     c.Response().StatusCode(),
			"latency":    latency.String(),
			"ip":         c.IP(),
			"method":     c.Method(),
			"path":       c.Path(),
			"handler":    c.Route().Name,
			"request_id": GetRequestID(c),
		})

		return nil
	}
}
