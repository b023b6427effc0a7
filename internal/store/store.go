package store

import (
	"context"

	"memories-backend/internal/models"
)

// Collection names. The Postgres backend uses the lowercased form as table name.
const (
	CollectionPhotos   = "Photos"
	CollectionTimeline = "Timeline"
	CollectionNotes    = "Notes"
)

// Store is the document store behind the API. List methods never return a nil
// slice. Insert methods assign the document ID.
type Store interface {
	ListAlbums(ctx context.Context) ([]models.Album, error)
	InsertAlbum(ctx context.Context, album *models.Album) error

	// ListTimeline returns entries ordered by Date ascending.
	ListTimeline(ctx context.Context) ([]models.TimelineEntry, error)
	InsertTimelineEntry(ctx context.Context, entry *models.TimelineEntry) error

	// ListNotes returns notes ordered by CreatedAt descending.
	ListNotes(ctx context.Context) ([]models.Note, error)
	InsertNote(ctx context.Context, note *models.Note) error

	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}
