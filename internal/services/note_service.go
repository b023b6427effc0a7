package services

import (
	"context"
	"time"

	"memories-backend/internal/models"
)

type NoteService struct {
	stores    StoreProvider
	publisher Publisher
	now       func() time.Time
}

func NewNoteService(stores StoreProvider, publisher Publisher) *NoteService {
	return &NoteService{stores: stores, publisher: orNop(publisher), now: time.Now}
}

// List returns notes newest first.
func (s *NoteService) List(ctx context.Context) ([]models.Note, error) {
	st, err := s.stores.Store()
	if err != nil {
		return nil, err
	}
	return st.ListNotes(ctx)
}

// Create stores sender and message as given, missing ones included.
// CreatedAt is always set here.
func (s *NoteService) Create(ctx context.Context, req models.CreateNoteRequest) (*models.Note, error) {
	st, err := s.stores.Store()
	if err != nil {
		return nil, err
	}

	note := &models.Note{
		Sender:    req.Sender,
		Message:   req.Message,
		CreatedAt: s.now().UTC(),
	}
	if err := st.InsertNote(ctx, note); err != nil {
		return nil, err
	}
	s.publisher.Publish(models.TopicNotes, note)
	return note, nil
}
