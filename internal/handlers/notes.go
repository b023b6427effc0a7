package handlers

import (
	"errors"
	"net/http"

	"memories-backend/internal/models"
	"memories-backend/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

func ListNotesHandler(notes *services.NoteService, log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		list, err := notes.List(c.UserContext())
		if err != nil {
			return respondError(c, log, err, "Failed to fetch notes")
		}
		return c.JSON(list)
	}
}

// CreateNoteHandler stores whatever sender and message were sent. An empty
// body, or one in a content type other than JSON or form data, stores a note
// with neither.
func CreateNoteHandler(notes *services.NoteService, log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.CreateNoteRequest
		if len(c.Body()) > 0 {
			if err := c.BodyParser(&req); err != nil {
				if !errors.Is(err, fiber.ErrUnprocessableEntity) {
					return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request"})
				}
				req = models.CreateNoteRequest{}
			}
		}

		if _, err := notes.Create(c.UserContext(), req); err != nil {
			return respondError(c, log, err, "Failed to save note")
		}
		return success(c)
	}
}
