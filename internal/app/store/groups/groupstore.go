// internal/app/store/groups/groupstore.go
package groupstore

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dalemusser/congregate/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

// ErrDuplicateCode is returned when an insert collides with an existing
// join code. The membership service regenerates and retries.
var ErrDuplicateCode = errors.New("a group with this join code already exists")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("groups")}
}

// GetByID loads a group by ObjectID. Returns mongo.ErrNoDocuments if
// the group does not exist.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Group, error) {
	var g models.Group
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&g); err != nil {
		return nil, err
	}
	return &g, nil
}

// GetByCode looks up a group by its join code. Returns
// mongo.ErrNoDocuments if no group has that code.
func (s *Store) GetByCode(ctx context.Context, code string) (*models.Group, error) {
	var g models.Group
	if err := s.c.FindOne(ctx, bson.M{"code": strings.ToUpper(strings.TrimSpace(code))}).Decode(&g); err != nil {
		return nil, err
	}
	return &g, nil
}

// List returns all groups sorted by name.
func (s *Store) List(ctx context.Context) ([]models.Group, error) {
	cur, err := s.c.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var groups []models.Group
	if err := cur.All(ctx, &groups); err != nil {
		return nil, err
	}
	return groups, nil
}

// Create inserts a new group. The caller supplies the join code; a
// duplicate-key collision on it comes back as ErrDuplicateCode so the
// caller can regenerate.
func (s *Store) Create(ctx context.Context, g models.Group) (models.Group, error) {
	now := time.Now().UTC()
	g.ID = primitive.NewObjectID()
	if g.Admins == nil {
		g.Admins = []primitive.ObjectID{}
	}
	if g.Members == nil {
		g.Members = []models.Member{}
	}
	if g.Events == nil {
		g.Events = []primitive.ObjectID{}
	}
	g.CreatedAt = now
	g.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, g); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Group{}, ErrDuplicateCode
		}
		return models.Group{}, err
	}
	return g, nil
}

// InfoUpdate holds group fields editable after creation. The join code
// is immutable.
type InfoUpdate struct {
	Name   string
	Admins []primitive.ObjectID
}

// UpdateInfo applies a partial edit and returns the updated group.
// Returns mongo.ErrNoDocuments if the group does not exist.
func (s *Store) UpdateInfo(ctx context.Context, id primitive.ObjectID, upd InfoUpdate) (*models.Group, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	if strings.TrimSpace(upd.Name) != "" {
		set["name"] = strings.TrimSpace(upd.Name)
	}
	if upd.Admins != nil {
		set["admins"] = upd.Admins
	}

	var g models.Group
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&g)
	if err != nil {
		return nil, err
	}
	return &g, nil
}

// Delete removes a group by ID. Returns the number of documents deleted
// (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// PushMember appends a membership row. Duplicate checking is the
// membership service's responsibility. Returns mongo.ErrNoDocuments if
// the group does not exist.
func (s *Store) PushMember(ctx context.Context, groupID primitive.ObjectID, m models.Member) error {
	res, err := s.c.UpdateByID(ctx, groupID, bson.M{
		"$push": bson.M{"members": m},
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

// PullMember removes every membership row for the user. Returns
// mongo.ErrNoDocuments if the group does not exist.
func (s *Store) PullMember(ctx context.Context, groupID, userID primitive.ObjectID) error {
	res, err := s.c.UpdateByID(ctx, groupID, bson.M{
		"$pull": bson.M{"members": bson.M{"user_id": userID}, "admins": userID},
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

// PullMemberFromAll removes the user from members and admins across all
// groups. Used when a user account is deleted.
func (s *Store) PullMemberFromAll(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	res, err := s.c.UpdateMany(ctx, bson.M{}, bson.M{
		"$pull": bson.M{"members": bson.M{"user_id": userID}, "admins": userID},
	})
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

// PushEvent appends an event id to the group's events list ($addToSet).
// Returns mongo.ErrNoDocuments if the group does not exist.
func (s *Store) PushEvent(ctx context.Context, groupID, eventID primitive.ObjectID) error {
	res, err := s.c.UpdateByID(ctx, groupID, bson.M{
		"$addToSet": bson.M{"events": eventID},
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

// PullEvent removes an event id from the group's events list. Returns
// mongo.ErrNoDocuments if the group does not exist.
func (s *Store) PullEvent(ctx context.Context, groupID, eventID primitive.ObjectID) error {
	res, err := s.c.UpdateByID(ctx, groupID, bson.M{
		"$pull": bson.M{"events": eventID},
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
