// internal/app/store/events/eventstore.go
package eventstore

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
	return &Store{c: db.Collection("events")}
}

// GetByID loads an event by ObjectID. Returns mongo.ErrNoDocuments if
// the event does not exist.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Event, error) {
	var e models.Event
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&e); err != nil {
		return nil, err
	}
	return &e, nil
}

// List returns all events sorted by date ascending.
func (s *Store) List(ctx context.Context) ([]models.Event, error) {
	cur, err := s.c.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "date", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var events []models.Event
	if err := cur.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// ListByGroup returns the events owned by a group, sorted by date.
func (s *Store) ListByGroup(ctx context.Context, groupID primitive.ObjectID) ([]models.Event, error) {
	cur, err := s.c.Find(ctx, bson.M{"associated_group": groupID},
		options.Find().SetSort(bson.D{{Key: "date", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var events []models.Event
	if err := cur.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// Create inserts a new event. AssociatedGroup must already be set and
// verified by the caller; it is immutable afterwards.
func (s *Store) Create(ctx context.Context, e models.Event) (models.Event, error) {
	now := time.Now().UTC()
	e.ID = primitive.NewObjectID()
	if e.Roles == nil {
		e.Roles = []models.RoleAssignment{}
	}
	if e.Songs == nil {
		e.Songs = []primitive.ObjectID{}
	}
	e.CreatedAt = now
	e.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, e); err != nil {
		return models.Event{}, err
	}
	return e, nil
}

// InfoUpdate holds event fields editable after creation. The owning
// group reference is immutable.
type InfoUpdate struct {
	Name  string
	Date  *time.Time
	Roles []models.RoleAssignment
}

// UpdateInfo applies a partial edit and returns the updated event.
// Returns mongo.ErrNoDocuments if the event does not exist.
func (s *Store) UpdateInfo(ctx context.Context, id primitive.ObjectID, upd InfoUpdate) (*models.Event, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	if upd.Name != "" {
		set["name"] = upd.Name
	}
	if upd.Date != nil {
		set["date"] = upd.Date.UTC()
	}
	if upd.Roles != nil {
		set["roles"] = upd.Roles
	}

	var e models.Event
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&e)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Delete removes an event by ID. Returns the number of documents
// deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// PushSong appends a song id to the event's song list. The duplicate
// check lives in the membership service, which reads the event first.
// Returns mongo.ErrNoDocuments if the event does not exist.
func (s *Store) PushSong(ctx context.Context, eventID, songID primitive.ObjectID) error {
	res, err := s.c.UpdateByID(ctx, eventID, bson.M{
		"$addToSet": bson.M{"songs": songID},
		"$set":      bson.M{"updated_at": time.Now().UTC()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// PullSong removes a song id from the event's song list. Removing an
// absent id is not an error. Returns mongo.ErrNoDocuments if the event
// does not exist.
func (s *Store) PullSong(ctx context.Context, eventID, songID primitive.ObjectID) error {
	res, err := s.c.UpdateByID(ctx, eventID, bson.M{
		"$pull": bson.M{"songs": songID},
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
