package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"strings"

	"memories-backend/internal/models"
)

type AlbumInput struct {
	Title       string
	Description string
	Date        string
	Files       []*multipart.FileHeader
}

type AlbumService struct {
	stores    StoreProvider
	files     FileSaver
	publisher Publisher
}

func NewAlbumService(stores StoreProvider, files FileSaver, publisher Publisher) *AlbumService {
	return &AlbumService{stores: stores, files: files, publisher: orNop(publisher)}
}

func (s *AlbumService) List(ctx context.Context) ([]models.Album, error) {
	st, err := s.stores.Store()
	if err != nil {
		return nil, err
	}
	return st.ListAlbums(ctx)
}

// Create writes the attachments, then inserts one album whose cover is the
// first stored path. Files already written are kept if the insert fails.
func (s *AlbumService) Create(ctx context.Context, in AlbumInput) (*models.Album, error) {
	if in.Title == "" {
		return nil, invalid("Title is required")
	}
	if len(in.Files) == 0 {
		return nil, invalid("At least one photo is required")
	}
	if len(in.Files) > MaxAttachments {
		return nil, invalid(fmt.Sprintf("At most %d photos are allowed", MaxAttachments))
	}

	st, err := s.stores.Store()
	if err != nil {
		return nil, err
	}

	paths, err := s.files.SaveAll(in.Files)
	if err != nil {
		return nil, fmt.Errorf("save photos: %w", err)
	}

	album := &models.Album{
		Title:       in.Title,
		Description: in.Description,
		Cover:       paths[0],
		Photos:      paths,
	}
	if strings.TrimSpace(in.Date) != "" {
		if d, err := ParseDate(in.Date); err == nil {
			album.Date = &d
		}
	}

	if err := st.InsertAlbum(ctx, album); err != nil {
		return nil, err
	}
	s.publisher.Publish(models.TopicPhotos, album)
	return album, nil
}
