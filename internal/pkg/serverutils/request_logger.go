package serverutils

import (
	"errors"
	"time"

	"studynotes-be/internal/pkg/apperror"
	"studynotes-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

func RequestLogger(log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		start := time.Now()
		err := ctx.Next()

		status := ctx.Response().StatusCode()
		if err != nil {
			// the error handler has not run yet; report what it will send
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			} else {
				status = apperror.From(err).Kind.HTTPStatus()
			}
		}

		log.Info("HTTP", "request", map[string]interface{}{
			"method":     ctx.Method(),
			"path":       ctx.Path(),
			"status":     status,
			"latency_ms": time.Since(start).Milliseconds(),
			"ip":         ctx.IP(),
			"request_id": ctx.Locals(LocalRequestID),
		})
		return err
	}
}
