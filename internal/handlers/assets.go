package handlers

import (
	"net/http"
	"net/url"

	"memories-backend/internal/uploads"

	"github.com/gofiber/fiber/v2"
)

// AssetGuard answers 404 "Image not found" for anything under the asset prefix
// that is not a file on disk. Existing files fall through to the static handler.
func AssetGuard(files *uploads.Storage) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rel, err := url.PathUnescape(c.Params("*"))
		if err != nil {
			return c.Status(http.StatusNotFound).SendString("Image not found")
		}
		if _, err := files.Resolve(rel); err != nil {
			return c.Status(http.StatusNotFound).SendString("Image not found")
		}
		return c.Next()
	}
}

// NotFoundHandler is the catch-all for unmatched routes.
func NotFoundHandler(c *fiber.Ctx) error {
	return c.Status(http.StatusNotFound).SendString("Resource not found")
}
