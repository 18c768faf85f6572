package userstore_test

import (
	"errors"
	"testing"

	userstore "github.com/dalemusser/congregate/internal/app/store/users"
	"github.com/dalemusser/congregate/internal/app/system/indexes"
	"github.com/dalemusser/congregate/internal/domain/models"
	"github.com/dalemusser/congregate/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func newStore(t *testing.T) (*userstore.Store, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	if err := indexes.EnsureAll(testutil.TestContext(t), db); err != nil {
		t.Fatalf("EnsureAll() error: %v", err)
	}
	return userstore.New(db), testutil.NewFixtures(t, db)
}

func TestCreate_NormalizesEmail(t *testing.T) {
	store, _ := newStore(t)
	ctx := testutil.TestContext(t)

	u, err := store.Create(ctx, models.User{
		Email:     "  Alice@Example.COM ",
		Password:  "hash",
		FirstName: "Alice",
	})
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if u.Email != "alice@example.com" {
		t.Errorf("email = %q, want alice@example.com", u.Email)
	}

	got, err := store.GetByEmail(ctx, "ALICE@example.com")
	if err != nil {
		t.Fatalf("GetByEmail() error: %v", err)
	}
	if got.ID != u.ID {
		t.Errorf("GetByEmail() returned the wrong user")
	}
}

func TestCreate_DuplicateEmail(t *testing.T) {
	store, _ := newStore(t)
	ctx := testutil.TestContext(t)

	if _, err := store.Create(ctx, models.User{Email: "alice@example.com", Password: "hash"}); err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	_, err := store.Create(ctx, models.User{Email: "Alice@example.com", Password: "hash"})
	if !errors.Is(err, userstore.ErrDuplicateEmail) {
		t.Fatalf("Create() duplicate error = %v, want ErrDuplicateEmail", err)
	}
}

func TestGetByID_Missing(t *testing.T) {
	store, _ := newStore(t)
	ctx := testutil.TestContext(t)

	_, err := store.GetByID(ctx, primitive.NewObjectID())
	if !errors.Is(err, mongo.ErrNoDocuments) {
		t.Fatalf("GetByID() error = %v, want ErrNoDocuments", err)
	}
}

func TestUpdateProfile_PartialEdit(t *testing.T) {
	store, fix := newStore(t)
	ctx := testutil.TestContext(t)
	u := fix.CreateUser(ctx, "alice@example.com", "password123")

	got, err := store.UpdateProfile(ctx, u.ID, userstore.ProfileUpdate{FirstName: "Alicia"})
	if err != nil {
		t.Fatalf("UpdateProfile() error: %v", err)
	}
	if got.FirstName != "Alicia" {
		t.Errorf("first name = %q, want Alicia", got.FirstName)
	}
	if got.LastName != u.LastName {
		t.Errorf("last name changed unexpectedly: %q", got.LastName)
	}
	if got.Email != u.Email {
		t.Errorf("email changed through profile edit: %q", got.Email)
	}
}

func TestUpdateProfile_ClearsLastName(t *testing.T) {
	store, fix := newStore(t)
	ctx := testutil.TestContext(t)
	u := fix.CreateUser(ctx, "alice@example.com", "password123")

	empty := ""
	got, err := store.UpdateProfile(ctx, u.ID, userstore.ProfileUpdate{LastName: &empty})
	if err != nil {
		t.Fatalf("UpdateProfile() error: %v", err)
	}
	if got.LastName != "" {
		t.Errorf("last name = %q, want cleared", got.LastName)
	}
}

func TestPushAndPullGroup(t *testing.T) {
	store, fix := newStore(t)
	ctx := testutil.TestContext(t)
	u := fix.CreateUser(ctx, "alice@example.com", "password123")
	groupID := primitive.NewObjectID()

	// Push twice: the set must hold a single occurrence.
	for i := 0; i < 2; i++ {
		if err := store.PushGroup(ctx, u.ID, groupID); err != nil {
			t.Fatalf("PushGroup() error: %v", err)
		}
	}
	got, err := store.GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetByID() error: %v", err)
	}
	if len(got.Groups) != 1 || got.Groups[0] != groupID {
		t.Errorf("groups = %v, want exactly one %s", got.Groups, groupID.Hex())
	}

	if err := store.PullGroup(ctx, u.ID, groupID); err != nil {
		t.Fatalf("PullGroup() error: %v", err)
	}
	got, err = store.GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetByID() error: %v", err)
	}
	if len(got.Groups) != 0 {
		t.Errorf("groups = %v, want empty", got.Groups)
	}
}

func TestDelete(t *testing.T) {
	store, fix := newStore(t)
	ctx := testutil.TestContext(t)
	u := fix.CreateUser(ctx, "alice@example.com", "password123")

	n, err := store.Delete(ctx, u.ID)
	if err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if n != 1 {
		t.Errorf("Delete() = %d, want 1", n)
	}
	n, err = store.Delete(ctx, u.ID)
	if err != nil {
		t.Fatalf("second Delete() error: %v", err)
	}
	if n != 0 {
		t.Errorf("second Delete() = %d, want 0", n)
	}
}
