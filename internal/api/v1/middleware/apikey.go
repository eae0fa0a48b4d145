package middleware

import (
	"crypto/subtle"

	fiber "github.com/gofiber/fiber/v2"

	"github.com/celestiaorg/intakeflow/internal/constants"
	log "github.com/celestiaorg/intakeflow/internal/logger"
)

// UnauthorizedMessage is the plain-text body of a rejected write
const UnauthorizedMessage = "Unauthorized: missing or invalid x-api-key"

// APIKeyConfig configures the write gate
type APIKeyConfig struct {
	// Header is the request header carrying the key
	Header string
	// Key is the shared secret. Matching is exact and case-sensitive.
	Key string
}

// APIKey rejects mutating requests that do not present the shared key.
// Reads pass through untouched. This is a single static secret, not user auth.
func APIKey(cfg APIKeyConfig) fiber.Handler {
	if cfg.Header == "" {
		cfg.Header = constants.DefaultAPIKeyHeader
	}
	expected := []byte(cfg.Key)

	return func(c *fiber.Ctx) error {
		if !isMutating(c.Method()) {
			return c.Next()
		}

		provided := c.Request().Header.Peek(cfg.Header)
		if len(expected) > 0 && subtle.ConstantTimeCompare(provided, expected) == 1 {
			return c.Next()
		}

		log.WarnWithFields("Rejected write without a valid API key", map[string]interface{}{
			"method":     c.Method(),
			"path":       c.Path(),
			"request_id": GetRequestID(c),
		})
		c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
		return c.Status(fiber.StatusUnauthorized).SendString(UnauthorizedMessage)
	}
}

func isMutating(method string) bool {
	switch method {
	case fiber.MethodPost, fiber.MethodPut, fiber.MethodPatch, fiber.MethodDelete:
		return true
	default:
		return false
	}
}
