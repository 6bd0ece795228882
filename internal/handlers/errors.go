package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"alfredoptarigan/prepio/internal/models"
	"alfredoptarigan/prepio/internal/services"
)

// writeServiceError maps a pipeline error to a status code and a message that
// is safe to show the user. internalMessage is used for anything unclassified.
func writeServiceError(c *fiber.Ctx, err error, internalMessage string) error {
	status := fiber.StatusInternalServerError
	switch services.ErrorKind(err) {
	case "unsupported_media_type", "missing_input", "invalid_input":
		status = fiber.StatusBadRequest
	case "service_unavailable", "upstream_request_error":
		status = services.StatusCode(err)
	}

	event := log.Warn()
	if status >= fiber.StatusInternalServerError {
		event = log.Error()
	}
	event.Err(err).
		Str("kind", services.ErrorKind(err)).
		Int("status", status).
		Str("path", c.Path()).
		Msg("❌ Request failed")

	return c.Status(status).JSON(models.ErrorResponse{
		Error: services.UserMessage(err, internalMessage),
	})
}

// ErrorHandler answers framework errors (unknown routes, oversized bodies)
// with the same JSON shape as the handlers.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "An internal server error occurred."

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code = fiberErr.Code
		message = fiberErr.Message
	} else {
		log.Error().Err(err).Str("path", c.Path()).Msg("❌ Unhandled error")
	}

	return c.Status(code).JSON(fiber.Map{
		"error": message,
		"code":  code,
	})
}
