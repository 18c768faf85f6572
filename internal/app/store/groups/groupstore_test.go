package groupstore_test

import (
	"errors"
	"testing"

	groupstore "github.com/dalemusser/congregate/internal/app/store/groups"
	"github.com/dalemusser/congregate/internal/app/system/indexes"
	"github.com/dalemusser/congregate/internal/domain/models"
	"github.com/dalemusser/congregate/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func newStore(t *testing.T) (*groupstore.Store, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	if err := indexes.EnsureAll(testutil.TestContext(t), db); err != nil {
		t.Fatalf("EnsureAll() error: %v", err)
	}
	return groupstore.New(db), testutil.NewFixtures(t, db)
}

func TestCreate_DuplicateCode(t *testing.T) {
	store, _ := newStore(t)
	ctx := testutil.TestContext(t)

	if _, err := store.Create(ctx, models.Group{Name: "Band", Code: "AB23"}); err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	_, err := store.Create(ctx, models.Group{Name: "Choir", Code: "AB23"})
	if !errors.Is(err, groupstore.ErrDuplicateCode) {
		t.Fatalf("Create() duplicate error = %v, want ErrDuplicateCode", err)
	}
}

func TestGetByCode_CaseInsensitive(t *testing.T) {
	store, _ := newStore(t)
	ctx := testutil.TestContext(t)

	created, err := store.Create(ctx, models.Group{Name: "Band", Code: "WXYZ"})
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	got, err := store.GetByCode(ctx, "wxyz")
	if err != nil {
		t.Fatalf("GetByCode() error: %v", err)
	}
	if got.ID != created.ID {
		t.Error("GetByCode() returned the wrong group")
	}
}

func TestGetByCode_Unknown(t *testing.T) {
	store, _ := newStore(t)
	ctx := testutil.TestContext(t)

	_, err := store.GetByCode(ctx, "ZZZZ")
	if !errors.Is(err, mongo.ErrNoDocuments) {
		t.Fatalf("GetByCode() error = %v, want ErrNoDocuments", err)
	}
}

func TestUpdateInfo_CodeImmutable(t *testing.T) {
	store, _ := newStore(t)
	ctx := testutil.TestContext(t)

	created, err := store.Create(ctx, models.Group{Name: "Band", Code: "AB23"})
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	admin := primitive.NewObjectID()
	got, err := store.UpdateInfo(ctx, created.ID, groupstore.InfoUpdate{
		Name:   "Praise Band",
		Admins: []primitive.ObjectID{admin},
	})
	if err != nil {
		t.Fatalf("UpdateInfo() error: %v", err)
	}
	if got.Name != "Praise Band" {
		t.Errorf("name = %q", got.Name)
	}
	if len(got.Admins) != 1 || got.Admins[0] != admin {
		t.Errorf("admins = %v", got.Admins)
	}
	if got.Code != "AB23" {
		t.Errorf("code changed on edit: %q", got.Code)
	}
}

func TestPullMember_RemovesFromMembersAndAdmins(t *testing.T) {
	store, _ := newStore(t)
	ctx := testutil.TestContext(t)
	userID := primitive.NewObjectID()

	created, err := store.Create(ctx, models.Group{
		Name:    "Band",
		Code:    "AB23",
		Admins:  []primitive.ObjectID{userID},
		Members: []models.Member{{Role: "admin", UserID: userID}},
	})
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	if err := store.PullMember(ctx, created.ID, userID); err != nil {
		t.Fatalf("PullMember() error: %v", err)
	}
	got, err := store.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID() error: %v", err)
	}
	if got.HasMember(userID) {
		t.Error("member row survived PullMember")
	}
	for _, id := range got.Admins {
		if id == userID {
			t.Error("admin entry survived PullMember")
		}
	}
}

func TestPullMemberFromAll(t *testing.T) {
	store, _ := newStore(t)
	ctx := testutil.TestContext(t)
	userID := primitive.NewObjectID()

	for _, code := range []string{"AAAA", "BBBB"} {
		if _, err := store.Create(ctx, models.Group{
			Name:    "Group " + code,
			Code:    code,
			Members: []models.Member{{Role: "member", UserID: userID}},
		}); err != nil {
			t.Fatalf("Create() error: %v", err)
		}
	}

	n, err := store.PullMemberFromAll(ctx, userID)
	if err != nil {
		t.Fatalf("PullMemberFromAll() error: %v", err)
	}
	if n != 2 {
		t.Errorf("PullMemberFromAll() = %d, want 2", n)
	}

	list, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	for _, g := range list {
		if g.HasMember(userID) {
			t.Errorf("group %s still lists the user", g.ID.Hex())
		}
	}
}

func TestPushAndPullEvent(t *testing.T) {
	store, _ := newStore(t)
	ctx := testutil.TestContext(t)

	created, err := store.Create(ctx, models.Group{Name: "Band", Code: "AB23"})
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	eventID := primitive.NewObjectID()

	for i := 0; i < 2; i++ {
		if err := store.PushEvent(ctx, created.ID, eventID); err != nil {
			t.Fatalf("PushEvent() error: %v", err)
		}
	}
	got, err := store.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID() error: %v", err)
	}
	if len(got.Events) != 1 {
		t.Errorf("events = %v, want a single entry", got.Events)
	}

	if err := store.PullEvent(ctx, created.ID, eventID); err != nil {
		t.Fatalf("PullEvent() error: %v", err)
	}
	got, err = store.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID() error: %v", err)
	}
	if len(got.Events) != 0 {
		t.Errorf("events = %v, want empty", got.Events)
	}
}
