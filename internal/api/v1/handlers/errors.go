// Package handlers provides HTTP request handling
package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/celestiaorg/intakeflow/internal/logger"
	"github.com/celestiaorg/intakeflow/internal/services"
	"github.com/celestiaorg/intakeflow/internal/types"
	"github.com/celestiaorg/intakeflow/internal/validation"
)

// Common error messages
const (
	ErrMsgInvalidReqBody   = "Invalid request body"
	ErrMsgInvalidProjectID = "Project id must be a positive integer"
	ErrMsgInternal         = "Internal server error"
)

// ErrorHandler maps service error kinds to status codes. Every error body is
// {"error": "<message>"}; server errors are logged and answered with a
// generic message.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := StatusFor(err)
	msg := err.Error()

	if code >= fiber.StatusInternalServerError {
		logger.ErrorWithFields("Request failed", map[string]interface{}{
			"method": c.Method(),
			"path":   c.Path(),
			"error":  msg,
		})
		msg = ErrMsgInternal
	}

	return c.Status(code).JSON(types.ErrorResponse{Error: msg})
}

// StatusFor returns the HTTP status matching err
func StatusFor(err error) int {
	var (
		fiberErr *fiber.Error
		valErr   *validation.Error
	)
	switch {
	case errors.As(err, &fiberErr):
		return fiberErr.Code
	case errors.As(err, &valErr):
		return fiber.StatusBadRequest
	case errors.Is(err, services.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, services.ErrConflict):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}
