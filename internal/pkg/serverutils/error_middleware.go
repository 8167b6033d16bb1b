package serverutils

import (
	"errors"

	"niche-picker-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware turns handler errors into the ErrorResponse envelope.
// *fiber.Error keeps its status, *ValidationError becomes 400, anything else
// is logged and reported as 500.
func ErrorHandlerMiddleware(log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}
		return WriteError(ctx, log, err)
	}
}

// WriteError is shared with fiber.Config.ErrorHandler for errors raised
// outside the middleware chain (e.g. unmatched routes).
func WriteError(ctx *fiber.Ctx, log logger.ILogger, err error) error {
	var verr *ValidationError
	if errors.As(err, &verr) {
		body := ErrorResponse(fiber.StatusBadRequest, "Invalid request")
		body.Errors = verr.Fields
		return ctx.Status(fiber.StatusBadRequest).JSON(body)
	}

	var ferr *fiber.Error
	if errors.As(err, &ferr) {
		return ctx.Status(ferr.Code).JSON(ErrorResponse(ferr.Code, ferr.Message))
	}

	log.Error("ErrorHandler", "Unhandled error", map[string]interface{}{
		"error":  err,
		"path":   ctx.Path(),
		"method": ctx.Method(),
	})
	return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse(fiber.StatusInternalServerError, "Internal server error"))
}
