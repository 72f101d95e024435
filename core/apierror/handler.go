package apierror

import (
	"errors"

	"cnet-api/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler returns the Fiber ErrorHandler that renders every failure as a Response.
// Internal errors are logged with their cause; the client only sees the kind
// and a generic message.
func Handler(l *zap.Logger, classifiers ...Classifier) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		apiErr := Translate(err, classifiers...)
		status := apiErr.Kind.Status()

		// Keep fiber's own status for 405 and similar routing errors.
		var fe *fiber.Error
		if errors.As(err, &fe) && apiErr.Kind != KindInternal {
			status = fe.Code
		}

		log := logger.WithRayID(l, c)
		fields := []zap.Field{
			zap.String("kind", string(apiErr.Kind)),
			zap.Int("status", status),
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
		}
		if status >= fiber.StatusInternalServerError {
			log.Error("Request failed", append(fields, zap.Error(err))...)
		} else {
			log.Debug("Request rejected", append(fields, zap.Error(err))...)
		}

		rayID, _ := c.Locals(logger.RayIDKey).(string)
		return c.Status(status).JSON(Response{
			Kind:    apiErr.Kind,
			Message: apiErr.Message,
			RayID:   rayID,
		})
	}
}
