package membership_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	eventstore "github.com/dalemusser/congregate/internal/app/store/events"
	groupstore "github.com/dalemusser/congregate/internal/app/store/groups"
	userstore "github.com/dalemusser/congregate/internal/app/store/users"
	"github.com/dalemusser/congregate/internal/app/system/apierr"
	"github.com/dalemusser/congregate/internal/app/system/indexes"
	"github.com/dalemusser/congregate/internal/app/system/membership"
	"github.com/dalemusser/congregate/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type env struct {
	svc    *membership.Service
	users  *userstore.Store
	groups *groupstore.Store
	events *eventstore.Store
	fix    *testutil.Fixtures
	db     *mongo.Database
}

func newEnv(t *testing.T) *env {
	t.Helper()
	db := testutil.SetupTestDB(t)
	if err := indexes.EnsureAll(testutil.TestContext(t), db); err != nil {
		t.Fatalf("EnsureAll() error: %v", err)
	}
	return &env{
		svc:    membership.NewService(db, zap.NewNop()),
		users:  userstore.New(db),
		groups: groupstore.New(db),
		events: eventstore.New(db),
		fix:    testutil.NewFixtures(t, db),
		db:     db,
	}
}

func TestCreateGroup_LinksBothSides(t *testing.T) {
	e := newEnv(t)
	ctx := testutil.TestContext(t)
	creator := e.fix.CreateUser(ctx, "creator@example.com", "password123")

	g, err := e.svc.CreateGroup(ctx, "Worship Team", creator.ID)
	if err != nil {
		t.Fatalf("CreateGroup() error: %v", err)
	}

	if len(g.Code) != 4 {
		t.Errorf("join code = %q, want 4 characters", g.Code)
	}
	if len(g.Admins) != 1 || g.Admins[0] != creator.ID {
		t.Errorf("admins = %v, want [%s]", g.Admins, creator.ID.Hex())
	}
	if len(g.Members) != 1 || g.Members[0].UserID != creator.ID || g.Members[0].Role != "admin" {
		t.Errorf("members = %v", g.Members)
	}

	u, err := e.users.GetByID(ctx, creator.ID)
	if err != nil {
		t.Fatalf("GetByID() error: %v", err)
	}
	if len(u.Groups) != 1 || u.Groups[0] != g.ID {
		t.Errorf("creator groups = %v, want [%s]", u.Groups, g.ID.Hex())
	}
}

func TestCreateGroup_UnknownCreatorPersistsNothing(t *testing.T) {
	e := newEnv(t)
	ctx := testutil.TestContext(t)

	_, err := e.svc.CreateGroup(ctx, "Ghost Group", primitive.NewObjectID())
	ae, ok := apierr.As(err)
	if !ok || ae.Kind != apierr.NotFound {
		t.Fatalf("CreateGroup() error = %v, want NotFound", err)
	}

	n, err := e.db.Collection("groups").CountDocuments(ctx, bson.M{})
	if err != nil {
		t.Fatalf("CountDocuments() error: %v", err)
	}
	if n != 0 {
		t.Errorf("groups collection has %d documents, want 0", n)
	}
}

func TestCreateGroup_CodesAreUnique(t *testing.T) {
	e := newEnv(t)
	ctx := testutil.TestContext(t)
	creator := e.fix.CreateUser(ctx, "creator@example.com", "password123")

	seen := map[string]bool{}
	for i := 0; i < 10; i++ {
		g, err := e.svc.CreateGroup(ctx, "Team", creator.ID)
		if err != nil {
			t.Fatalf("CreateGroup() #%d error: %v", i, err)
		}
		if seen[g.Code] {
			t.Fatalf("duplicate join code %q", g.Code)
		}
		seen[g.Code] = true
	}
}

func TestJoinGroup_Bidirectional(t *testing.T) {
	e := newEnv(t)
	ctx := testutil.TestContext(t)
	creator := e.fix.CreateUser(ctx, "creator@example.com", "password123")
	joiner := e.fix.CreateUser(ctx, "joiner@example.com", "password123")

	g, err := e.svc.CreateGroup(ctx, "Band", creator.ID)
	if err != nil {
		t.Fatalf("CreateGroup() error: %v", err)
	}

	joined, err := e.svc.JoinGroup(ctx, g.Code, joiner.ID)
	if err != nil {
		t.Fatalf("JoinGroup() error: %v", err)
	}
	if !joined.HasMember(joiner.ID) {
		t.Error("group members do not include the joiner")
	}

	u, err := e.users.GetByID(ctx, joiner.ID)
	if err != nil {
		t.Fatalf("GetByID() error: %v", err)
	}
	found := false
	for _, id := range u.Groups {
		if id == g.ID {
			found = true
		}
	}
	if !found {
		t.Errorf("joiner groups = %v, missing %s", u.Groups, g.ID.Hex())
	}
}

func TestJoinGroup_LowercaseCodeAccepted(t *testing.T) {
	e := newEnv(t)
	ctx := testutil.TestContext(t)
	creator := e.fix.CreateUser(ctx, "creator@example.com", "password123")
	joiner := e.fix.CreateUser(ctx, "joiner@example.com", "password123")

	g, err := e.svc.CreateGroup(ctx, "Band", creator.ID)
	if err != nil {
		t.Fatalf("CreateGroup() error: %v", err)
	}

	if _, err := e.svc.JoinGroup(ctx, strings.ToLower(g.Code), joiner.ID); err != nil {
		t.Fatalf("JoinGroup() with lowercased code error: %v", err)
	}
}

func TestJoinGroup_DuplicateIsConflict(t *testing.T) {
	e := newEnv(t)
	ctx := testutil.TestContext(t)
	creator := e.fix.CreateUser(ctx, "creator@example.com", "password123")

	g, err := e.svc.CreateGroup(ctx, "Band", creator.ID)
	if err != nil {
		t.Fatalf("CreateGroup() error: %v", err)
	}

	_, err = e.svc.JoinGroup(ctx, g.Code, creator.ID)
	ae, ok := apierr.As(err)
	if !ok || ae.Kind != apierr.Conflict {
		t.Fatalf("JoinGroup() duplicate error = %v, want Conflict", err)
	}

	g2, err := e.groups.GetByID(ctx, g.ID)
	if err != nil {
		t.Fatalf("GetByID() error: %v", err)
	}
	if len(g2.Members) != 1 {
		t.Errorf("members = %v, duplicate join must not add a second row", g2.Members)
	}
}

func TestJoinGroup_UnknownCode(t *testing.T) {
	e := newEnv(t)
	ctx := testutil.TestContext(t)
	joiner := e.fix.CreateUser(ctx, "joiner@example.com", "password123")

	_, err := e.svc.JoinGroup(ctx, "ZZZZ", joiner.ID)
	ae, ok := apierr.As(err)
	if !ok || ae.Kind != apierr.NotFound {
		t.Fatalf("JoinGroup() error = %v, want NotFound", err)
	}
}

func TestLeaveGroup_RemovesBothSides(t *testing.T) {
	e := newEnv(t)
	ctx := testutil.TestContext(t)
	creator := e.fix.CreateUser(ctx, "creator@example.com", "password123")
	joiner := e.fix.CreateUser(ctx, "joiner@example.com", "password123")

	g, err := e.svc.CreateGroup(ctx, "Band", creator.ID)
	if err != nil {
		t.Fatalf("CreateGroup() error: %v", err)
	}
	if _, err := e.svc.JoinGroup(ctx, g.Code, joiner.ID); err != nil {
		t.Fatalf("JoinGroup() error: %v", err)
	}

	if err := e.svc.LeaveGroup(ctx, g.ID, joiner.ID); err != nil {
		t.Fatalf("LeaveGroup() error: %v", err)
	}

	g2, err := e.groups.GetByID(ctx, g.ID)
	if err != nil {
		t.Fatalf("GetByID() error: %v", err)
	}
	if g2.HasMember(joiner.ID) {
		t.Error("group still lists the departed member")
	}
	u, err := e.users.GetByID(ctx, joiner.ID)
	if err != nil {
		t.Fatalf("GetByID() error: %v", err)
	}
	for _, id := range u.Groups {
		if id == g.ID {
			t.Error("user still lists the departed group")
		}
	}
}

func TestDeleteGroup_UnlinksEveryMember(t *testing.T) {
	e := newEnv(t)
	ctx := testutil.TestContext(t)
	creator := e.fix.CreateUser(ctx, "creator@example.com", "password123")
	joiner := e.fix.CreateUser(ctx, "joiner@example.com", "password123")

	g, err := e.svc.CreateGroup(ctx, "Band", creator.ID)
	if err != nil {
		t.Fatalf("CreateGroup() error: %v", err)
	}
	if _, err := e.svc.JoinGroup(ctx, g.Code, joiner.ID); err != nil {
		t.Fatalf("JoinGroup() error: %v", err)
	}

	if _, err := e.svc.DeleteGroup(ctx, g.ID); err != nil {
		t.Fatalf("DeleteGroup() error: %v", err)
	}

	if _, err := e.groups.GetByID(ctx, g.ID); !errors.Is(err, mongo.ErrNoDocuments) {
		t.Errorf("GetByID() after delete error = %v, want ErrNoDocuments", err)
	}
	for _, uid := range []primitive.ObjectID{creator.ID, joiner.ID} {
		u, err := e.users.GetByID(ctx, uid)
		if err != nil {
			t.Fatalf("GetByID() error: %v", err)
		}
		for _, id := range u.Groups {
			if id == g.ID {
				t.Errorf("user %s still lists the deleted group", uid.Hex())
			}
		}
	}
}

func TestRemoveUser_PulledFromEveryGroup(t *testing.T) {
	e := newEnv(t)
	ctx := testutil.TestContext(t)
	creator := e.fix.CreateUser(ctx, "creator@example.com", "password123")
	joiner := e.fix.CreateUser(ctx, "joiner@example.com", "password123")

	g1, err := e.svc.CreateGroup(ctx, "Band", creator.ID)
	if err != nil {
		t.Fatalf("CreateGroup() error: %v", err)
	}
	g2, err := e.svc.CreateGroup(ctx, "Choir", creator.ID)
	if err != nil {
		t.Fatalf("CreateGroup() error: %v", err)
	}
	for _, g := range []string{g1.Code, g2.Code} {
		if _, err := e.svc.JoinGroup(ctx, g, joiner.ID); err != nil {
			t.Fatalf("JoinGroup() error: %v", err)
		}
	}

	if _, err := e.svc.RemoveUser(ctx, joiner.ID); err != nil {
		t.Fatalf("RemoveUser() error: %v", err)
	}

	if _, err := e.users.GetByID(ctx, joiner.ID); !errors.Is(err, mongo.ErrNoDocuments) {
		t.Errorf("GetByID() after delete error = %v, want ErrNoDocuments", err)
	}
	for _, gid := range []primitive.ObjectID{g1.ID, g2.ID} {
		g, err := e.groups.GetByID(ctx, gid)
		if err != nil {
			t.Fatalf("GetByID() error: %v", err)
		}
		if g.HasMember(joiner.ID) {
			t.Errorf("group %s still lists the deleted user", gid.Hex())
		}
	}
}

func TestCreateEvent_LinksBothSides(t *testing.T) {
	e := newEnv(t)
	ctx := testutil.TestContext(t)
	creator := e.fix.CreateUser(ctx, "creator@example.com", "password123")
	g, err := e.svc.CreateGroup(ctx, "Band", creator.ID)
	if err != nil {
		t.Fatalf("CreateGroup() error: %v", err)
	}

	date := time.Now().UTC().Add(72 * time.Hour).Truncate(time.Second)
	ev, updated, err := e.svc.CreateEvent(ctx, g.ID, "Sunday Service", date)
	if err != nil {
		t.Fatalf("CreateEvent() error: %v", err)
	}

	if ev.AssociatedGroup != g.ID {
		t.Errorf("associated group = %s, want %s", ev.AssociatedGroup.Hex(), g.ID.Hex())
	}
	found := false
	for _, id := range updated.Events {
		if id == ev.ID {
			found = true
		}
	}
	if !found {
		t.Errorf("updated group events = %v, missing %s", updated.Events, ev.ID.Hex())
	}
}

func TestCreateEvent_UnknownGroup(t *testing.T) {
	e := newEnv(t)
	ctx := testutil.TestContext(t)

	_, _, err := e.svc.CreateEvent(ctx, primitive.NewObjectID(), "Service", time.Now())
	ae, ok := apierr.As(err)
	if !ok || ae.Kind != apierr.NotFound {
		t.Fatalf("CreateEvent() error = %v, want NotFound", err)
	}

	n, err := e.db.Collection("events").CountDocuments(ctx, bson.M{})
	if err != nil {
		t.Fatalf("CountDocuments() error: %v", err)
	}
	if n != 0 {
		t.Errorf("events collection has %d documents, want 0", n)
	}
}

func TestDeleteEvent_RemovedFromOwningGroup(t *testing.T) {
	e := newEnv(t)
	ctx := testutil.TestContext(t)
	creator := e.fix.CreateUser(ctx, "creator@example.com", "password123")
	g, err := e.svc.CreateGroup(ctx, "Band", creator.ID)
	if err != nil {
		t.Fatalf("CreateGroup() error: %v", err)
	}
	ev, _, err := e.svc.CreateEvent(ctx, g.ID, "Rehearsal", time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("CreateEvent() error: %v", err)
	}

	if _, err := e.svc.DeleteEvent(ctx, ev.ID); err != nil {
		t.Fatalf("DeleteEvent() error: %v", err)
	}

	if _, err := e.events.GetByID(ctx, ev.ID); !errors.Is(err, mongo.ErrNoDocuments) {
		t.Errorf("GetByID() after delete error = %v, want ErrNoDocuments", err)
	}
	g2, err := e.groups.GetByID(ctx, g.ID)
	if err != nil {
		t.Fatalf("GetByID() error: %v", err)
	}
	for _, id := range g2.Events {
		if id == ev.ID {
			t.Error("group still lists the deleted event")
		}
	}
}

func TestAddSongToEvent_SecondAddReportsPresence(t *testing.T) {
	e := newEnv(t)
	ctx := testutil.TestContext(t)
	creator := e.fix.CreateUser(ctx, "creator@example.com", "password123")
	g, err := e.svc.CreateGroup(ctx, "Band", creator.ID)
	if err != nil {
		t.Fatalf("CreateGroup() error: %v", err)
	}
	ev, _, err := e.svc.CreateEvent(ctx, g.ID, "Rehearsal", time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("CreateEvent() error: %v", err)
	}
	song := e.fix.CreateSong(ctx, "Amazing Grace", 72)

	if err := e.svc.AddSongToEvent(ctx, ev.ID, song.ID); err != nil {
		t.Fatalf("AddSongToEvent() error: %v", err)
	}
	if err := e.svc.AddSongToEvent(ctx, ev.ID, song.ID); !errors.Is(err, membership.ErrSongAlreadyPresent) {
		t.Fatalf("second AddSongToEvent() error = %v, want ErrSongAlreadyPresent", err)
	}

	ev2, err := e.events.GetByID(ctx, ev.ID)
	if err != nil {
		t.Fatalf("GetByID() error: %v", err)
	}
	count := 0
	for _, id := range ev2.Songs {
		if id == song.ID {
			count++
		}
	}
	if count != 1 {
		t.Errorf("song appears %d times on the event, want exactly 1", count)
	}
}

func TestRemoveSongFromEvent_AbsentSongIsNoOp(t *testing.T) {
	e := newEnv(t)
	ctx := testutil.TestContext(t)
	creator := e.fix.CreateUser(ctx, "creator@example.com", "password123")
	g, err := e.svc.CreateGroup(ctx, "Band", creator.ID)
	if err != nil {
		t.Fatalf("CreateGroup() error: %v", err)
	}
	ev, _, err := e.svc.CreateEvent(ctx, g.ID, "Rehearsal", time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("CreateEvent() error: %v", err)
	}

	if err := e.svc.RemoveSongFromEvent(ctx, ev.ID, primitive.NewObjectID()); err != nil {
		t.Fatalf("RemoveSongFromEvent() on absent song error: %v", err)
	}
}
