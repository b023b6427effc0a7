package handlers

import (
	"memories-backend/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

func ListTimelineHandler(timeline *services.TimelineService, log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		entries, err := timeline.List(c.UserContext())
		if err != nil {
			return respondError(c, log, err, "Failed to fetch timeline")
		}
		return c.JSON(entries)
	}
}

// CreateTimelineHandler accepts a multipart form with title, description, date
// and up to ten files under "images".
func CreateTimelineHandler(timeline *services.TimelineService, log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		entry, err := timeline.Create(c.UserContext(), services.TimelineInput{
			Title:       c.FormValue("title"),
			Description: c.FormValue("description"),
			Date:        c.FormValue("date"),
			Files:       formFiles(c, "images"),
		})
		if err != nil {
			return respondError(c, log, err, "Upload failed")
		}
		log.Info().Str("entry_id", entry.ID).Int("images", len(entry.Images)).Msg("timeline entry created")
		return success(c)
	}
}
