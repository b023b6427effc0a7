package pgstore

import (
	"context"
	"fmt"
	"time"

	"memories-backend/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store keeps the three collections as typed Postgres tables.
type Store struct {
	pool *pgxpool.Pool
}

// Open creates the connection pool, pings it and applies pending migrations.
func Open(ctx context.Context, connString string) (*Store, error) {
	pool, err := NewPool(ctx, connString)
	if err != nil {
		return nil, err
	}
	if err := Migrate(pool); err != nil {
		pool.Close()
		return nil, err
	}
	return New(pool), nil
}

// NewPool parses connString and returns a pinged pool.
func NewPool(ctx context.Context, connString string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("unable to parse connection string: %w", err)
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = time.Hour
	config.MaxConnIdleTime = 30 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}
	return pool, nil
}

func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func (s *Store) ListAlbums(ctx context.Context) ([]models.Album, error) {
	query := `SELECT id::text, title, description, date, cover, photos FROM photos ORDER BY seq`
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query photos: %w", err)
	}
	defer rows.Close()

	albums := []models.Album{}
	for rows.Next() {
		var a models.Album
		if err := rows.Scan(&a.ID, &a.Title, &a.Description, &a.Date, &a.Cover, &a.Photos); err != nil {
			return nil, fmt.Errorf("scan photo album: %w", err)
		}
		a.Photos = nonNil(a.Photos)
		if a.Date != nil {
			utc := a.Date.UTC()
			a.Date = &utc
		}
		albums = append(albums, a)
	}
	return albums, rows.Err()
}

func (s *Store) InsertAlbum(ctx context.Context, album *models.Album) error {
	id := uuid.New().String()
	query := `INSERT INTO photos (id, title, description, date, cover, photos) VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := s.pool.Exec(ctx, query, id, album.Title, album.Description, album.Date, album.Cover, nonNil(album.Photos))
	if err != nil {
		return fmt.Errorf("insert photo album: %w", err)
	}
	album.ID = id
	return nil
}

func (s *Store) ListTimeline(ctx context.Context) ([]models.TimelineEntry, error) {
	query := `SELECT id::text, title, description, date, images FROM timeline ORDER BY date ASC, seq ASC`
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query timeline: %w", err)
	}
	defer rows.Close()

	entries := []models.TimelineEntry{}
	for rows.Next() {
		var e models.TimelineEntry
		if err := rows.Scan(&e.ID, &e.Title, &e.Description, &e.Date, &e.Images); err != nil {
			return nil, fmt.Errorf("scan timeline entry: %w", err)
		}
		e.Date = e.Date.UTC()
		e.Images = nonNil(e.Images)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *Store) InsertTimelineEntry(ctx context.Context, entry *models.TimelineEntry) error {
	id := uuid.New().String()
	entry.Images = nonNil(entry.Images)
	query := `INSERT INTO timeline (id, title, description, date, images) VALUES ($1, $2, $3, $4, $5)`
	if _, err := s.pool.Exec(ctx, query, id, entry.Title, entry.Description, entry.Date, entry.Images); err != nil {
		return fmt.Errorf("insert timeline entry: %w", err)
	}
	entry.ID = id
	return nil
}

func (s *Store) ListNotes(ctx context.Context) ([]models.Note, error) {
	query := `SELECT id::text, sender, message, created_at FROM notes ORDER BY created_at DESC, seq DESC`
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query notes: %w", err)
	}

	notes, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Note, error) {
		var n models.Note
		err := row.Scan(&n.ID, &n.Sender, &n.Message, &n.CreatedAt)
		n.CreatedAt = n.CreatedAt.UTC()
		return n, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan notes: %w", err)
	}
	if notes == nil {
		notes = []models.Note{}
	}
	return notes, nil
}

func (s *Store) InsertNote(ctx context.Context, note *models.Note) error {
	id := uuid.New().String()
	query := `INSERT INTO notes (id, sender, message, created_at) VALUES ($1, $2, $3, $4)`
	if _, err := s.pool.Exec(ctx, query, id, note.Sender, note.Message, note.CreatedAt); err != nil {
		return fmt.Errorf("insert note: %w", err)
	}
	note.ID = id
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *Store) Close(ctx context.Context) error {
	s.pool.Close()
	return nil
}

func nonNil(paths []string) []string {
	if paths == nil {
		return []string{}
	}
	return paths
}
