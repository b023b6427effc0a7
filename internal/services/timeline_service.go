package services

import (
	"context"
	"fmt"
	"mime/multipart"

	"memories-backend/internal/models"
)

type TimelineInput struct {
	Title       string
	Description string
	Date        string
	Files       []*multipart.FileHeader
}

type TimelineService struct {
	stores    StoreProvider
	files     FileSaver
	publisher Publisher
}

func NewTimelineService(stores StoreProvider, files FileSaver, publisher Publisher) *TimelineService {
	return &TimelineService{stores: stores, files: files, publisher: orNop(publisher)}
}

// List returns entries ordered by date, oldest first.
func (s *TimelineService) List(ctx context.Context) ([]models.TimelineEntry, error) {
	st, err := s.stores.Store()
	if err != nil {
		return nil, err
	}
	return st.ListTimeline(ctx)
}

// Create accepts zero attachments; the entry then has an empty images list.
func (s *TimelineService) Create(ctx context.Context, in TimelineInput) (*models.TimelineEntry, error) {
	if in.Title == "" || in.Date == "" {
		return nil, invalid("Title and date are required")
	}
	date, err := ParseDate(in.Date)
	if err != nil {
		return nil, invalid("Invalid date")
	}
	if len(in.Files) > MaxAttachments {
		return nil, invalid(fmt.Sprintf("At most %d images are allowed", MaxAttachments))
	}

	st, err := s.stores.Store()
	if err != nil {
		return nil, err
	}

	images := []string{}
	if len(in.Files) > 0 {
		images, err = s.files.SaveAll(in.Files)
		if err != nil {
			return nil, fmt.Errorf("save images: %w", err)
		}
	}

	entry := &models.TimelineEntry{
		Title:       in.Title,
		Description: in.Description,
		Date:        date,
		Images:      images,
	}
	if err := st.InsertTimelineEntry(ctx, entry); err != nil {
		return nil, err
	}
	s.publisher.Publish(models.TopicTimeline, entry)
	return entry, nil
}
