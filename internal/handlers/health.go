package handlers

import (
	"context"
	"net/http"
	"time"

	"memories-backend/internal/db"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// HealthHandler is a liveness probe. It does not look at the database.
func HealthHandler(c *fiber.Ctx) error {
	return c.SendString("OK")
}

// ReadyHandler pings the store. The cause of a failure only goes to the log.
func ReadyHandler(handle *db.Handle, log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()

		if err := handle.Ping(ctx); err != nil {
			log.Warn().Err(err).Msg("readiness check failed")
			return c.Status(http.StatusServiceUnavailable).JSON(fiber.Map{
				"status": "not_ready",
				"error":  "Database not ready",
			})
		}
		return c.JSON(fiber.Map{"status": "ready"})
	}
}
