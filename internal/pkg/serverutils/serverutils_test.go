package serverutils

import (
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateRequest(t *testing.T) {
	type payload struct {
		Question string `validate:"required"`
		K        int    `validate:"omitempty,min=1,max=50"`
	}

	tests := []struct {
		name    string
		req     payload
		wantErr string
	}{
		{name: "valid", req: payload{Question: "q", K: 8}},
		{name: "zero k allowed", req: payload{Question: "q"}},
		{name: "missing question", req: payload{}, wantErr: "field 'Question' failed on 'required'"},
		{name: "k out of range", req: payload{Question: "q", K: 99}, wantErr: "field 'K' failed on 'max'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRequest(tt.req)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			var appErr *AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, fiber.StatusBadRequest, appErr.Code)
			assert.Contains(t, appErr.Message, tt.wantErr)
		})
	}
}

func TestErrorHandlerMiddleware(t *testing.T) {
	tests := []struct {
		name        string
		handler     fiber.Handler
		wantStatus  int
		wantMessage string
		wantHint    string
	}{
		{
			name: "app error keeps status and hint",
			handler: func(c *fiber.Ctx) error {
				return NewConfigurationError("missing API key", "set OPENAI_API_KEY")
			},
			wantStatus:  fiber.StatusInternalServerError,
			wantMessage: "missing API key",
			wantHint:    "set OPENAI_API_KEY",
		},
		{
			name: "retrieval error maps to bad gateway",
			handler: func(c *fiber.Ctx) error {
				return NewRetrievalError("vector search failed")
			},
			wantStatus:  fiber.StatusBadGateway,
			wantMessage: "vector search failed",
		},
		{
			name: "unknown error hides internals",
			handler: func(c *fiber.Ctx) error {
				return errors.New("pq: connection refused")
			},
			wantStatus:  fiber.StatusInternalServerError,
			wantMessage: "internal server error",
		},
		{
			name: "success passes through",
			handler: func(c *fiber.Ctx) error {
				return c.JSON(SuccessResponse("ok", nil))
			},
			wantStatus:  fiber.StatusOK,
			wantMessage: "ok",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Use(ErrorHandlerMiddleware())
			app.Get("/", tt.handler)

			resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			var envelope Response
			require.NoError(t, json.Unmarshal(body, &envelope))
			assert.Equal(t, tt.wantMessage, envelope.Message)
			assert.Equal(t, tt.wantHint, envelope.Hint)
		})
	}
}
