package handlers

import (
	"errors"
	"net/http"

	"memories-backend/internal/db"
	"memories-backend/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// respondError maps service errors onto statuses. Unexpected errors are logged
// and answered with fallback only.
func respondError(c *fiber.Ctx, log zerolog.Logger, err error, fallback string) error {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": verr.Message})
	case errors.Is(err, db.ErrNotReady):
		return c.Status(http.StatusServiceUnavailable).JSON(fiber.Map{"error": "Database not ready"})
	case errors.Is(err, services.ErrUnauthorized):
		return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	default:
		log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg(fallback)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": fallback})
	}
}

func success(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"success": true})
}
