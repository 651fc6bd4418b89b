package presenters

import (
	"github.com/gofiber/fiber/v2"

	"secret-recipe-backend/internal/utils"
)

type SuccessEnvelope struct {
	Status string `json:"status"`
	Data   any    `json:"data"`
}

type ErrorEnvelope struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	// Error carries the underlying cause and is only populated outside
	// production.
	Error string `json:"error,omitempty"`
}

func SuccessResponse(c *fiber.Ctx, data any, statusCode int) error {
	return c.Status(statusCode).JSON(SuccessEnvelope{
		Status: "success",
		Data:   data,
	})
}

func ErrorResponse(c *fiber.Ctx, statusCode int, message string, err error) error {
	envelope := ErrorEnvelope{
		Status:  "error",
		Message: message,
	}
	if err != nil && utils.GetConfig("IsProd") != "true" {
		envelope.Error = err.Error()
	}
	return c.Status(statusCode).JSON(envelope)
}
