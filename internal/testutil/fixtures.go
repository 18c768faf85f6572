// internal/testutil/fixtures.go
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/dalemusser/congregate/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateUser inserts a user with a bcrypt hash of the given password.
func (f *Fixtures) CreateUser(ctx context.Context, email, password string) models.User {
	f.t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		f.t.Fatalf("failed to hash test password: %v", err)
	}

	now := time.Now().UTC()
	u := models.User{
		ID:        primitive.NewObjectID(),
		Email:     email,
		Password:  string(hash),
		FirstName: "Test",
		LastName:  "User",
		Groups:    []primitive.ObjectID{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := f.db.Collection("users").InsertOne(ctx, u); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return u
}

// CreateGroup inserts a group with the given creator as admin and
// first member.
func (f *Fixtures) CreateGroup(ctx context.Context, name, code string, creator models.User) models.Group {
	f.t.Helper()

	now := time.Now().UTC()
	g := models.Group{
		ID:     primitive.NewObjectID(),
		Name:   name,
		Code:   code,
		Admins: []primitive.ObjectID{creator.ID},
		Members: []models.Member{
			{Role: "admin", UserID: creator.ID},
		},
		Events:    []primitive.ObjectID{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := f.db.Collection("groups").InsertOne(ctx, g); err != nil {
		f.t.Fatalf("failed to create test group: %v", err)
	}

	// Mirror the membership on the user document.
	if _, err := f.db.Collection("users").UpdateByID(ctx, creator.ID,
		map[string]any{"$addToSet": map[string]any{"groups": g.ID}}); err != nil {
		f.t.Fatalf("failed to link test group to creator: %v", err)
	}
	return g
}

// CreateEvent inserts an event owned by the given group and links it
// on the group document.
func (f *Fixtures) CreateEvent(ctx context.Context, name string, group models.Group) models.Event {
	f.t.Helper()

	now := time.Now().UTC()
	e := models.Event{
		ID:              primitive.NewObjectID(),
		Name:            name,
		Date:            now.Add(7 * 24 * time.Hour),
		AssociatedGroup: group.ID,
		Roles:           []models.RoleAssignment{},
		Songs:           []primitive.ObjectID{},
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if _, err := f.db.Collection("events").InsertOne(ctx, e); err != nil {
		f.t.Fatalf("failed to create test event: %v", err)
	}
	if _, err := f.db.Collection("groups").UpdateByID(ctx, group.ID,
		map[string]any{"$addToSet": map[string]any{"events": e.ID}}); err != nil {
		f.t.Fatalf("failed to link test event to group: %v", err)
	}
	return e
}

// CreateSong inserts a song.
func (f *Fixtures) CreateSong(ctx context.Context, title string, bpm int) models.Song {
	f.t.Helper()

	now := time.Now().UTC()
	s := models.Song{
		ID:            primitive.NewObjectID(),
		Title:         title,
		BPM:           bpm,
		ReferenceURLs: []string{},
		Attachments:   []models.Attachment{},
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if _, err := f.db.Collection("songs").InsertOne(ctx, s); err != nil {
		f.t.Fatalf("failed to create test song: %v", err)
	}
	return s
}
