package groups_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dalemusser/congregate/internal/app/features/groups"
	"github.com/dalemusser/congregate/internal/app/system/indexes"
	"github.com/dalemusser/congregate/internal/app/system/membership"
	"github.com/dalemusser/congregate/internal/domain/models"
	"github.com/dalemusser/congregate/internal/testutil"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*groups.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	if err := indexes.EnsureAll(testutil.TestContext(t), db); err != nil {
		t.Fatalf("EnsureAll() error: %v", err)
	}
	logger := zap.NewNop()
	ms := membership.NewService(db, logger)
	return groups.NewHandler(db, ms, logger), testutil.NewFixtures(t, db)
}

func postJSON(u models.User, body string) *http.Request {
	req := httptest.NewRequest("POST", "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return testutil.WithUser(req, u)
}

func TestHandleCreate_DefaultsCreatorToTokenSubject(t *testing.T) {
	h, fix := newTestHandler(t)
	u := fix.CreateUser(testutil.TestContext(t), "creator@example.com", "password123")

	rec := httptest.NewRecorder()
	h.HandleCreate(rec, postJSON(u, `{"groupName":"Worship Team"}`))

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}
	var g models.Group
	if err := json.Unmarshal(rec.Body.Bytes(), &g); err != nil {
		t.Fatalf("body is not JSON: %v", err)
	}
	if g.Name != "Worship Team" {
		t.Errorf("name = %q", g.Name)
	}
	if len(g.Code) != 4 {
		t.Errorf("code = %q, want 4 characters", g.Code)
	}
	if !g.HasMember(u.ID) {
		t.Error("creator is not a member of the new group")
	}
}

func TestHandleCreate_UnknownCreatorID(t *testing.T) {
	h, fix := newTestHandler(t)
	u := fix.CreateUser(testutil.TestContext(t), "creator@example.com", "password123")

	rec := httptest.NewRecorder()
	h.HandleCreate(rec, postJSON(u, `{"groupName":"Ghosts","creatorId":"649c0a0a0a0a0a0a0a0a0a0a"}`))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404: %s", rec.Code, rec.Body.String())
	}
}

func TestHandleJoin_ThenDuplicateConflict(t *testing.T) {
	h, fix := newTestHandler(t)
	ctx := testutil.TestContext(t)
	owner := fix.CreateUser(ctx, "owner@example.com", "password123")
	joiner := fix.CreateUser(ctx, "joiner@example.com", "password123")
	g := fix.CreateGroup(ctx, "Band", "AB23", owner)

	rec := httptest.NewRecorder()
	h.HandleJoin(rec, postJSON(joiner, `{"code":"ab23"}`))
	if rec.Code != http.StatusOK {
		t.Fatalf("first join status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	var joined models.Group
	if err := json.Unmarshal(rec.Body.Bytes(), &joined); err != nil {
		t.Fatalf("body is not JSON: %v", err)
	}
	if joined.ID != g.ID || !joined.HasMember(joiner.ID) {
		t.Errorf("joined group = %+v", joined)
	}

	rec = httptest.NewRecorder()
	h.HandleJoin(rec, postJSON(joiner, `{"code":"AB23"}`))
	if rec.Code != http.StatusConflict {
		t.Fatalf("second join status = %d, want 409: %s", rec.Code, rec.Body.String())
	}
}

func TestHandleJoin_UnknownCode(t *testing.T) {
	h, fix := newTestHandler(t)
	joiner := fix.CreateUser(testutil.TestContext(t), "joiner@example.com", "password123")

	rec := httptest.NewRecorder()
	h.HandleJoin(rec, postJSON(joiner, `{"code":"ZZZZ"}`))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404: %s", rec.Code, rec.Body.String())
	}
}

func TestHandleDelete_GroupGoneFromMembers(t *testing.T) {
	h, fix := newTestHandler(t)
	ctx := testutil.TestContext(t)
	owner := fix.CreateUser(ctx, "owner@example.com", "password123")
	g := fix.CreateGroup(ctx, "Band", "AB23", owner)

	req := testutil.WithUser(httptest.NewRequest("DELETE", "/groups/"+g.ID.Hex(), nil), owner)
	req = testutil.WithChiURLParam(req, "id", g.ID.Hex())
	rec := httptest.NewRecorder()
	h.HandleDelete(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	req = testutil.WithUser(httptest.NewRequest("GET", "/groups/"+g.ID.Hex(), nil), owner)
	req = testutil.WithChiURLParam(req, "id", g.ID.Hex())
	h.ServeGroup(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("ServeGroup after delete status = %d, want 404", rec.Code)
	}
}
