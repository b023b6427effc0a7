package handlers

import (
	"net/http"
	"strings"

	"memories-backend/internal/models"
	"memories-backend/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// LoginHandler checks the submitted password against the shared secret.
// An unreadable body counts as a wrong password.
func LoginHandler(auth *services.AuthService, log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.LoginRequest
		if len(c.Body()) > 0 {
			if err := c.BodyParser(&req); err != nil {
				req.Password = ""
			}
		}

		res, err := auth.Login(req.Password)
		if err != nil {
			log.Info().Str("ip", c.IP()).Bool("authorized", false).Msg("login attempt")
			return respondError(c, log, err, "Login failed")
		}
		log.Info().Str("ip", c.IP()).Bool("authorized", true).Msg("login attempt")
		return c.JSON(res)
	}
}

// RequireWriteToken guards write routes with the token issued by LoginHandler.
func RequireWriteToken(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Get token from query param `access_token` or Authorization header
		token := c.Query("access_token")
		if token == "" {
			authHeader := c.Get(fiber.HeaderAuthorization)
			if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
				token = authHeader[7:]
			}
		}

		if token == "" || auth.ValidateToken(token) != nil {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
		}
		return c.Next()
	}
}
