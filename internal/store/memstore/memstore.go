package memstore

import (
	"context"
	"errors"
	"sort"
	"sync"

	"memories-backend/internal/models"

	"github.com/google/uuid"
)

var ErrClosed = errors.New("memstore: closed")

// Store keeps documents in process memory. It backs DB_DRIVER=memory and the
// HTTP tests.
type Store struct {
	mu       sync.RWMutex
	albums   []models.Album
	timeline []models.TimelineEntry
	notes    []models.Note
	closed   bool
}

func New() *Store {
	return &Store{}
}

func (s *Store) ListAlbums(ctx context.Context) ([]models.Album, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Album, len(s.albums))
	for i, a := range s.albums {
		a.Photos = append([]string{}, a.Photos...)
		out[i] = a
	}
	return out, nil
}

func (s *Store) InsertAlbum(ctx context.Context, album *models.Album) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	album.ID = uuid.New().String()
	stored := *album
	stored.Photos = append([]string{}, album.Photos...)
	s.albums = append(s.albums, stored)
	return nil
}

func (s *Store) ListTimeline(ctx context.Context) ([]models.TimelineEntry, error) {
	s.mu.RLock()
	out := make([]models.TimelineEntry, len(s.timeline))
	for i, e := range s.timeline {
		e.Images = append([]string{}, e.Images...)
		out[i] = e
	}
	s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out, nil
}

func (s *Store) InsertTimelineEntry(ctx context.Context, entry *models.TimelineEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	entry.ID = uuid.New().String()
	if entry.Images == nil {
		entry.Images = []string{}
	}
	stored := *entry
	stored.Images = append([]string{}, entry.Images...)
	s.timeline = append(s.timeline, stored)
	return nil
}

func (s *Store) ListNotes(ctx context.Context) ([]models.Note, error) {
	s.mu.RLock()
	out := make([]models.Note, len(s.notes))
	copy(out, s.notes)
	s.mu.RUnlock()

	// Newest first; for equal timestamps the later insert wins.
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *Store) InsertNote(ctx context.Context, note *models.Note) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	note.ID = uuid.New().String()
	s.notes = append(s.notes, *note)
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrClosed
	}
	return ctx.Err()
}

func (s *Store) Close(ctx context.Context) error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	return nil
}
