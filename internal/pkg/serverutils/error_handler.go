package serverutils

import (
	"errors"

	"studynotes-be/internal/pkg/apperror"
	"studynotes-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// NewErrorHandler renders every returned error as a BaseResponse envelope.
// Internal and unavailable causes are logged, never sent to the client.
func NewErrorHandler(log logger.ILogger) fiber.ErrorHandler {
	return func(ctx *fiber.Ctx, err error) error {
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
		}

		appErr := apperror.From(err)
		status := appErr.Kind.HTTPStatus()

		if appErr.Kind == apperror.KindInternal || appErr.Kind == apperror.KindUnavailable {
			log.Error("HTTP", appErr.Message, map[string]interface{}{
				"method":     ctx.Method(),
				"path":       ctx.Path(),
				"status":     status,
				"error":      err,
				"request_id": ctx.Locals(LocalRequestID),
			})
		}
		if appErr.Kind == apperror.KindUnavailable {
			ctx.Set(fiber.HeaderRetryAfter, "1")
		}

		res := ErrorResponse(status, appErr.Message)
		res.Reason = appErr.Reason
		return ctx.Status(status).JSON(res)
	}
}
