package serverutils

import (
	"errors"

	"sales-assistant-be/internal/service"
	"sales-assistant-be/pkg/rag/generate"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware maps service errors onto HTTP statuses so
// controllers can return errors as-is.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		status := fiber.StatusInternalServerError

		var validationErr *ValidationError
		var fiberErr *fiber.Error
		switch {
		case errors.As(err, &validationErr), errors.Is(err, service.ErrEmptyQuery):
			status = fiber.StatusBadRequest
		case errors.Is(err, generate.ErrNoProvider):
			status = fiber.StatusServiceUnavailable
		case errors.As(err, &fiberErr):
			status = fiberErr.Code
		}

		return ctx.Status(status).JSON(ErrorResponse(err.Error()))
	}
}
