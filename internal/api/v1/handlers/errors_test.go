package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/celestiaorg/intakeflow/internal/services"
	"github.com/celestiaorg/intakeflow/internal/types"
	"github.com/celestiaorg/intakeflow/internal/validation"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "validation", err: &validation.Error{Message: "bad"}, want: fiber.StatusBadRequest},
		{name: "not found", err: &services.NotFoundError{ID: 3}, want: fiber.StatusNotFound},
		{name: "bare not found", err: services.ErrNotFound, want: fiber.StatusNotFound},
		{name: "conflict", err: &services.ConflictError{PlannerTaskID: "PLN-1"}, want: fiber.StatusConflict},
		{name: "wrapped conflict", err: fmt.Errorf("create: %w", &services.ConflictError{}), want: fiber.StatusConflict},
		{name: "fiber error", err: fiber.NewError(fiber.StatusBadRequest, ErrMsgInvalidReqBody), want: fiber.StatusBadRequest},
		{name: "route not found", err: fiber.ErrNotFound, want: fiber.StatusNotFound},
		{name: "anything else", err: errors.New("disk on fire"), want: fiber.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusFor(tt.err))
		})
	}
}

func TestErrorHandlerBody(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{name: "client error keeps its message", err: &services.NotFoundError{ID: 7}, code: fiber.StatusNotFound, message: "Project 7 not found."},
		{name: "server error is generic", err: fmt.Errorf("store error: %w", errors.New("database is locked")), code: fiber.StatusInternalServerError, message: ErrMsgInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
			app.Get("/", func(_ *fiber.Ctx) error { return tt.err })

			resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/", nil), -1)
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, tt.code, resp.StatusCode)

			raw, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			var body types.ErrorResponse
			require.NoError(t, json.Unmarshal(raw, &body))
			assert.Equal(t, tt.message, body.Error)
			assert.NotContains(t, string(raw), "database is locked")
		})
	}
}
