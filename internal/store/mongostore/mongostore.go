package mongostore

import (
	"context"
	"fmt"
	"time"

	"memories-backend/internal/models"
	"memories-backend/internal/store"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"
)

const defaultDatabase = "memories"

type albumDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Description string             `bson:"description"`
	Date        *time.Time         `bson:"date"`
	Cover       string             `bson:"cover"`
	Photos      []string           `bson:"photos"`
}

type timelineDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Description string             `bson:"description"`
	Date        time.Time          `bson:"date"`
	Images      []string           `bson:"images"`
}

type noteDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Sender    *string            `bson:"sender,omitempty"`
	Message   *string            `bson:"message,omitempty"`
	CreatedAt time.Time          `bson:"createdAt"`
}

// Store keeps each entity kind in its own collection of one database.
type Store struct {
	client   *mongo.Client
	photos   *mongo.Collection
	timeline *mongo.Collection
	notes    *mongo.Collection
}

// Open connects to uri and pings the primary. dbName falls back to the
// database named in the URI, then to "memories".
func Open(ctx context.Context, uri, dbName string) (*Store, error) {
	if dbName == "" {
		cs, err := connstring.ParseAndValidate(uri)
		if err != nil {
			return nil, fmt.Errorf("unable to parse connection string: %w", err)
		}
		dbName = cs.Database
	}
	if dbName == "" {
		dbName = defaultDatabase
	}

	opts := options.Client().
		ApplyURI(uri).
		SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1))

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("unable to create client: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	return New(client, dbName), nil
}

func New(client *mongo.Client, dbName string) *Store {
	db := client.Database(dbName)
	return &Store{
		client:   client,
		photos:   db.Collection(store.CollectionPhotos),
		timeline: db.Collection(store.CollectionTimeline),
		notes:    db.Collection(store.CollectionNotes),
	}
}

func (s *Store) ListAlbums(ctx context.Context) ([]models.Album, error) {
	cur, err := s.photos.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("find photos: %w", err)
	}
	var docs []albumDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode photos: %w", err)
	}

	albums := make([]models.Album, 0, len(docs))
	for _, d := range docs {
		albums = append(albums, models.Album{
			ID:          d.ID.Hex(),
			Title:       d.Title,
			Description: d.Description,
			Date:        d.Date,
			Cover:       d.Cover,
			Photos:      nonNil(d.Photos),
		})
	}
	return albums, nil
}

func (s *Store) InsertAlbum(ctx context.Context, album *models.Album) error {
	doc := albumDoc{
		ID:          primitive.NewObjectID(),
		Title:       album.Title,
		Description: album.Description,
		Date:        album.Date,
		Cover:       album.Cover,
		Photos:      nonNil(album.Photos),
	}
	if _, err := s.photos.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert photo album: %w", err)
	}
	album.ID = doc.ID.Hex()
	return nil
}

func (s *Store) ListTimeline(ctx context.Context) ([]models.TimelineEntry, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})
	cur, err := s.timeline.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find timeline: %w", err)
	}
	var docs []timelineDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode timeline: %w", err)
	}

	entries := make([]models.TimelineEntry, 0, len(docs))
	for _, d := range docs {
		entries = append(entries, models.TimelineEntry{
			ID:          d.ID.Hex(),
			Title:       d.Title,
			Description: d.Description,
			Date:        d.Date.UTC(),
			Images:      nonNil(d.Images),
		})
	}
	return entries, nil
}

func (s *Store) InsertTimelineEntry(ctx context.Context, entry *models.TimelineEntry) error {
	entry.Images = nonNil(entry.Images)
	doc := timelineDoc{
		ID:          primitive.NewObjectID(),
		Title:       entry.Title,
		Description: entry.Description,
		Date:        entry.Date,
		Images:      entry.Images,
	}
	if _, err := s.timeline.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert timeline entry: %w", err)
	}
	entry.ID = doc.ID.Hex()
	return nil
}

func (s *Store) ListNotes(ctx context.Context) ([]models.Note, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
	cur, err := s.notes.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find notes: %w", err)
	}
	var docs []noteDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode notes: %w", err)
	}

	notes := make([]models.Note, 0, len(docs))
	for _, d := range docs {
		notes = append(notes, models.Note{
			ID:        d.ID.Hex(),
			Sender:    d.Sender,
			Message:   d.Message,
			CreatedAt: d.CreatedAt.UTC(),
		})
	}
	return notes, nil
}

func (s *Store) InsertNote(ctx context.Context, note *models.Note) error {
	doc := noteDoc{
		ID:        primitive.NewObjectID(),
		Sender:    note.Sender,
		Message:   note.Message,
		CreatedAt: note.CreatedAt,
	}
	if _, err := s.notes.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert note: %w", err)
	}
	note.ID = doc.ID.Hex()
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func nonNil(paths []string) []string {
	if paths == nil {
		return []string{}
	}
	return paths
}
