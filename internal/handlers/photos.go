package handlers

import (
	"mime/multipart"

	"memories-backend/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

func ListPhotosHandler(albums *services.AlbumService, log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		list, err := albums.List(c.UserContext())
		if err != nil {
			return respondError(c, log, err, "Failed to fetch photos")
		}
		return c.JSON(list)
	}
}

// CreatePhotoHandler accepts a multipart form with title, description, date
// and up to ten files under "photos".
func CreatePhotoHandler(albums *services.AlbumService, log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		album, err := albums.Create(c.UserContext(), services.AlbumInput{
			Title:       c.FormValue("title"),
			Description: c.FormValue("description"),
			Date:        c.FormValue("date"),
			Files:       formFiles(c, "photos"),
		})
		if err != nil {
			return respondError(c, log, err, "Upload failed")
		}
		log.Info().Str("album_id", album.ID).Int("photos", len(album.Photos)).Msg("album created")
		return success(c)
	}
}

// formFiles collects the files sent under field or "field[]". Requests that
// are not multipart have no files.
func formFiles(c *fiber.Ctx, field string) []*multipart.FileHeader {
	form, err := c.MultipartForm()
	if err != nil || form == nil {
		return nil
	}
	files := append([]*multipart.FileHeader{}, form.File[field]...)
	return append(files, form.File[field+"[]"]...)
}
