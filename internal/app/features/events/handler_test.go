package events_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dalemusser/congregate/internal/app/features/events"
	groupstore "github.com/dalemusser/congregate/internal/app/store/groups"
	"github.com/dalemusser/congregate/internal/app/system/indexes"
	"github.com/dalemusser/congregate/internal/app/system/membership"
	"github.com/dalemusser/congregate/internal/domain/models"
	"github.com/dalemusser/congregate/internal/testutil"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*events.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	if err := indexes.EnsureAll(testutil.TestContext(t), db); err != nil {
		t.Fatalf("EnsureAll() error: %v", err)
	}
	logger := zap.NewNop()
	ms := membership.NewService(db, logger)
	return events.NewHandler(db, ms, logger), testutil.NewFixtures(t, db)
}

func postJSON(u models.User, body string) *http.Request {
	req := httptest.NewRequest("POST", "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return testutil.WithUser(req, u)
}

func TestHandleCreate_ReturnsEventAndUpdatedGroup(t *testing.T) {
	h, fix := newTestHandler(t)
	ctx := testutil.TestContext(t)
	owner := fix.CreateUser(ctx, "owner@example.com", "password123")
	g := fix.CreateGroup(ctx, "Band", "AB23", owner)

	date := time.Now().UTC().Add(72 * time.Hour).Format(time.RFC3339)
	body := fmt.Sprintf(`{"groupId":%q,"name":"Sunday Service","eventDate":%q}`, g.ID.Hex(), date)

	rec := httptest.NewRecorder()
	h.HandleCreate(rec, postJSON(owner, body))

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		CreatedEvent models.Event `json:"createdEvent"`
		UpdatedGroup models.Group `json:"updatedGroup"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("body is not JSON: %v", err)
	}
	if resp.CreatedEvent.AssociatedGroup != g.ID {
		t.Errorf("associated group = %s", resp.CreatedEvent.AssociatedGroup.Hex())
	}
	found := false
	for _, id := range resp.UpdatedGroup.Events {
		if id == resp.CreatedEvent.ID {
			found = true
		}
	}
	if !found {
		t.Error("updated group does not list the created event")
	}
}

func TestHandleCreate_BadDate(t *testing.T) {
	h, fix := newTestHandler(t)
	ctx := testutil.TestContext(t)
	owner := fix.CreateUser(ctx, "owner@example.com", "password123")
	g := fix.CreateGroup(ctx, "Band", "AB23", owner)

	body := fmt.Sprintf(`{"groupId":%q,"name":"Service","eventDate":"next sunday"}`, g.ID.Hex())
	rec := httptest.NewRecorder()
	h.HandleCreate(rec, postJSON(owner, body))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400: %s", rec.Code, rec.Body.String())
	}
}

func TestHandleCreate_UnknownGroup(t *testing.T) {
	h, fix := newTestHandler(t)
	owner := fix.CreateUser(testutil.TestContext(t), "owner@example.com", "password123")

	body := fmt.Sprintf(`{"groupId":"649c0a0a0a0a0a0a0a0a0a0a","name":"Service","eventDate":%q}`,
		time.Now().Format(time.RFC3339))
	rec := httptest.NewRecorder()
	h.HandleCreate(rec, postJSON(owner, body))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404: %s", rec.Code, rec.Body.String())
	}
}

func TestHandleAddSong_SecondAddIsOK(t *testing.T) {
	h, fix := newTestHandler(t)
	ctx := testutil.TestContext(t)
	owner := fix.CreateUser(ctx, "owner@example.com", "password123")
	g := fix.CreateGroup(ctx, "Band", "AB23", owner)
	ev := fix.CreateEvent(ctx, "Rehearsal", g)
	song := fix.CreateSong(ctx, "Amazing Grace", 72)

	body := fmt.Sprintf(`{"songId":%q}`, song.ID.Hex())

	req := testutil.WithChiURLParam(postJSON(owner, body), "id", ev.ID.Hex())
	rec := httptest.NewRecorder()
	h.HandleAddSong(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("first add status = %d, want 201: %s", rec.Code, rec.Body.String())
	}

	req = testutil.WithChiURLParam(postJSON(owner, body), "id", ev.ID.Hex())
	rec = httptest.NewRecorder()
	h.HandleAddSong(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("second add status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "already") {
		t.Errorf("second add body = %s, want an already-present message", rec.Body.String())
	}
}

func TestHandleDelete_RemovesFromOwningGroup(t *testing.T) {
	h, fix := newTestHandler(t)
	ctx := testutil.TestContext(t)
	owner := fix.CreateUser(ctx, "owner@example.com", "password123")
	g := fix.CreateGroup(ctx, "Band", "AB23", owner)
	ev := fix.CreateEvent(ctx, "Rehearsal", g)

	req := testutil.WithUser(httptest.NewRequest("DELETE", "/events/"+ev.ID.Hex(), nil), owner)
	req = testutil.WithChiURLParam(req, "id", ev.ID.Hex())
	rec := httptest.NewRecorder()
	h.HandleDelete(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	got, err := groupstore.New(fix.DB()).GetByID(ctx, g.ID)
	if err != nil {
		t.Fatalf("GetByID() error: %v", err)
	}
	for _, id := range got.Events {
		if id == ev.ID {
			t.Error("group still lists the deleted event")
		}
	}
}
