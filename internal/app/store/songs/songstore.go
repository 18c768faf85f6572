// internal/app/store/songs/songstore.go
package songstore

import (
	"context"
	"time"

	"github.com/dalemusser/congregate/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("songs")}
}

// GetByID loads a song by ObjectID. Returns mongo.ErrNoDocuments if the
// song does not exist.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Song, error) {
	var sg models.Song
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&sg); err != nil {
		return nil, err
	}
	return &sg, nil
}

// List returns all songs sorted by title.
func (s *Store) List(ctx context.Context) ([]models.Song, error) {
	cur, err := s.c.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "title", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var songs []models.Song
	if err := cur.All(ctx, &songs); err != nil {
		return nil, err
	}
	return songs, nil
}

// Create inserts a new song.
func (s *Store) Create(ctx context.Context, sg models.Song) (models.Song, error) {
	now := time.Now().UTC()
	sg.ID = primitive.NewObjectID()
	if sg.ReferenceURLs == nil {
		sg.ReferenceURLs = []string{}
	}
	if sg.Attachments == nil {
		sg.Attachments = []models.Attachment{}
	}
	sg.CreatedAt = now
	sg.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, sg); err != nil {
		return models.Song{}, err
	}
	return sg, nil
}

// InfoUpdate holds song fields editable after creation.
type InfoUpdate struct {
	Title       string
	BPM         *int
	Attachments []models.Attachment
}

// UpdateInfo applies a partial edit and returns the updated song.
// Returns mongo.ErrNoDocuments if the song does not exist.
func (s *Store) UpdateInfo(ctx context.Context, id primitive.ObjectID, upd InfoUpdate) (*models.Song, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	if upd.Title != "" {
		set["title"] = upd.Title
	}
	if upd.BPM != nil {
		set["bpm"] = *upd.BPM
	}
	if upd.Attachments != nil {
		set["attachments"] = upd.Attachments
	}

	var sg models.Song
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&sg)
	if err != nil {
		return nil, err
	}
	return &sg, nil
}

// Delete removes a song by ID. Event references are not cleaned up;
// readers tolerate stale ids. Returns the number of documents deleted.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// AddReferenceURL appends a reference URL to the song.
// Returns mongo.ErrNoDocuments if the song does not exist.
func (s *Store) AddReferenceURL(ctx context.Context, id primitive.ObjectID, url string) error {
	res, err := s.c.UpdateByID(ctx, id, bson.M{
		"$push": bson.M{"reference_urls": url},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// RemoveReferenceURL removes every occurrence of the URL. Removing an
// absent URL succeeds. Returns mongo.ErrNoDocuments if the song does
// not exist.
func (s *Store) RemoveReferenceURL(ctx context.Context, id primitive.ObjectID, url string) error {
	res, err := s.c.UpdateByID(ctx, id, bson.M{
		"$pull": bson.M{"reference_urls": url},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
