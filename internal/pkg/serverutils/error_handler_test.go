// FILE: internal/pkg/serverutils/error_handler_test.go
package serverutils

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeEnvelope(t *testing.T, res *http.Response) BaseResponse[any] {
	t.Helper()
	var body BaseResponse[any]
	require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	return body
}

func TestErrorHandlerMiddleware_UnexpectedErrorIs500(t *testing.T) {
	app := fiber.New()
	app.Use(ErrorHandlerMiddleware())
	app.Get("/boom", func(ctx *fiber.Ctx) error {
		return errors.New("pq: connection refused")
	})

	res, err := app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil))
	require.NoError(t, err)
	defer res.Body.Close()

	assert.Equal(t, fiber.StatusInternalServerError, res.StatusCode)
	body := decodeEnvelope(t, res)
	assert.False(t, body.Success)
	assert.Equal(t, fiber.StatusInternalServerError, body.Code)
}

func TestErrorHandlerMiddleware_FiberErrorKeepsCode(t *testing.T) {
	app := fiber.New()
	app.Use(ErrorHandlerMiddleware())
	app.Get("/bad", func(ctx *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusBadRequest, "validation failed on: email")
	})

	res, err := app.Test(httptest.NewRequest(http.MethodGet, "/bad", nil))
	require.NoError(t, err)
	defer res.Body.Close()

	assert.Equal(t, fiber.StatusBadRequest, res.StatusCode)
	body := decodeEnvelope(t, res)
	assert.False(t, body.Success)
	assert.Equal(t, fiber.StatusBadRequest, body.Code)
	assert.Equal(t, "validation failed on: email", body.Message)
}

func TestErrorHandlerMiddleware_PassesThroughSuccess(t *testing.T) {
	app := fiber.New()
	app.Use(ErrorHandlerMiddleware())
	app.Get("/ok", func(ctx *fiber.Ctx) error {
		return ctx.JSON(SuccessResponse[any]("ok", nil))
	})

	res, err := app.Test(httptest.NewRequest(http.MethodGet, "/ok", nil))
	require.NoError(t, err)
	defer res.Body.Close()

	assert.Equal(t, fiber.StatusOK, res.StatusCode)
}
