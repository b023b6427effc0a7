// Package storetest holds the behaviour every store.Store backend must share.
package storetest

import (
	"context"
	"testing"
	"time"

	"memories-backend/internal/models"
	"memories-backend/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Run exercises a fresh, empty store returned by newStore.
func Run(t *testing.T, newStore func(t *testing.T) store.Store) {
	t.Run("AlbumsKeepInsertOrder", func(t *testing.T) {
		testAlbums(t, newStore(t))
	})
	t.Run("TimelineSortedByDate", func(t *testing.T) {
		testTimeline(t, newStore(t))
	})
	t.Run("NotesNewestFirst", func(t *testing.T) {
		testNotes(t, newStore(t))
	})
	t.Run("EmptyListsAreNotNil", func(t *testing.T) {
		testEmpty(t, newStore(t))
	})
	t.Run("Ping", func(t *testing.T) {
		assert.NoError(t, newStore(t).Ping(context.Background()))
	})
}

func testAlbums(t *testing.T, s store.Store) {
	ctx := context.Background()
	date := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	first := &models.Album{
		Title:       "Lisbon",
		Description: "spring trip",
		Date:        &date,
		Cover:       "Assets/1-a.jpg",
		Photos:      []string{"Assets/1-a.jpg", "Assets/1-b.jpg"},
	}
	second := &models.Album{
		Title:  "Undated",
		Cover:  "Assets/2-c.jpg",
		Photos: []string{"Assets/2-c.jpg"},
	}
	require.NoError(t, s.InsertAlbum(ctx, first))
	require.NoError(t, s.InsertAlbum(ctx, second))
	assert.NotEmpty(t, first.ID)
	assert.NotEqual(t, first.ID, second.ID)

	albums, err := s.ListAlbums(ctx)
	require.NoError(t, err)
	require.Len(t, albums, 2)

	assert.Equal(t, first.ID, albums[0].ID)
	assert.Equal(t, "Lisbon", albums[0].Title)
	assert.Equal(t, "spring trip", albums[0].Description)
	require.NotNil(t, albums[0].Date)
	assert.True(t, date.Equal(*albums[0].Date))
	assert.Equal(t, "Assets/1-a.jpg", albums[0].Cover)
	assert.Equal(t, []string{"Assets/1-a.jpg", "Assets/1-b.jpg"}, albums[0].Photos)

	assert.Equal(t, "Undated", albums[1].Title)
	assert.Nil(t, albums[1].Date)
}

func testTimeline(t *testing.T, s store.Store) {
	ctx := context.Background()
	day := func(d int) time.Time { return time.Date(2023, 1, d, 12, 0, 0, 0, time.UTC) }

	for _, e := range []*models.TimelineEntry{
		{Title: "third", Date: day(20), Images: []string{"Assets/x.jpg"}},
		{Title: "first", Date: day(1)},
		{Title: "second", Date: day(10), Images: []string{}},
	} {
		require.NoError(t, s.InsertTimelineEntry(ctx, e))
		assert.NotEmpty(t, e.ID)
	}

	entries, err := s.ListTimeline(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	titles := []string{entries[0].Title, entries[1].Title, entries[2].Title}
	assert.Equal(t, []string{"first", "second", "third"}, titles)
	for i := 1; i < len(entries); i++ {
		assert.False(t, entries[i].Date.Before(entries[i-1].Date))
	}
	assert.NotNil(t, entries[0].Images)
	assert.Empty(t, entries[0].Images)
	assert.Equal(t, []string{"Assets/x.jpg"}, entries[2].Images)
}

func testNotes(t *testing.T, s store.Store) {
	ctx := context.Background()
	base := time.Now().UTC().Truncate(time.Millisecond)
	str := func(v string) *string { return &v }

	older := &models.Note{Sender: str("Grace"), Message: str("hello"), CreatedAt: base.Add(-time.Minute)}
	newer := &models.Note{Sender: str("Ada"), Message: str("hi"), CreatedAt: base}
	anonymous := &models.Note{CreatedAt: base.Add(-time.Hour)}

	require.NoError(t, s.InsertNote(ctx, older))
	require.NoError(t, s.InsertNote(ctx, newer))
	require.NoError(t, s.InsertNote(ctx, anonymous))

	notes, err := s.ListNotes(ctx)
	require.NoError(t, err)
	require.Len(t, notes, 3)

	require.NotNil(t, notes[0].Sender)
	assert.Equal(t, "Ada", *notes[0].Sender)
	assert.Equal(t, "hi", *notes[0].Message)
	assert.Equal(t, newer.ID, notes[0].ID)
	assert.Equal(t, "Grace", *notes[1].Sender)
	assert.Nil(t, notes[2].Sender)
	assert.Nil(t, notes[2].Message)
	for i := 1; i < len(notes); i++ {
		assert.False(t, notes[i].CreatedAt.After(notes[i-1].CreatedAt))
	}
}

func testEmpty(t *testing.T, s store.Store) {
	ctx := context.Background()

	albums, err := s.ListAlbums(ctx)
	require.NoError(t, err)
	assert.NotNil(t, albums)

	entries, err := s.ListTimeline(ctx)
	require.NoError(t, err)
	assert.NotNil(t, entries)

	notes, err := s.ListNotes(ctx)
	require.NoError(t, err)
	assert.NotNil(t, notes)
}
