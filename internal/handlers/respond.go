package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/fathima-sithara/media-vault/internal/apperrors"
)

func respond(c *fiber.Ctx, code int, status, msg string, payload fiber.Map) error {
	body := fiber.Map{"status": status}
	if msg != "" {
		body["msg"] = msg
	}
	for k, v := range payload {
		body[k] = v
	}
	return c.Status(code).JSON(body)
}

// respondErr maps a service error onto the uniform envelope. Internal
// errors are logged and never leak details to the caller.
func respondErr(c *fiber.Ctx, logger *zap.SugaredLogger, err error) error {
	code := apperrors.Status(err)
	msg := clientMessage(err)
	if code == fiber.StatusInternalServerError {
		logger.Errorw("request failed", "path", c.Path(), "error", err)
		msg = "An unexpected error occurred"
	}
	return c.Status(code).JSON(fiber.Map{"status": "error", "msg": msg})
}

// clientMessage strips the taxonomy sentinel prefix from a wrapped error.
func clientMessage(err error) string {
	s := err.Error()
	if _, rest, ok := strings.Cut(s, ": "); ok && rest != "" {
		return rest
	}
	return s
}
