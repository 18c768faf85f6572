package contact_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dalemusser/congregate/internal/app/features/contact"
	"github.com/dalemusser/congregate/internal/app/system/mailer"
	"go.uber.org/zap"
)

func newTestHandler(to string) *contact.Handler {
	m := mailer.New("localhost", 2525, "", "", "noreply@congregate.app", "Congregate", zap.NewNop())
	return contact.NewHandler(m, to, zap.NewNop())
}

func postJSON(body string) *http.Request {
	req := httptest.NewRequest("POST", "/contact", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestHandleSend_RequiresAllFields(t *testing.T) {
	h := newTestHandler("office@example.com")

	for _, body := range []string{
		`{"email":"alice@example.com","message":"hello"}`,
		`{"name":"Alice","message":"hello"}`,
		`{"name":"Alice","email":"alice@example.com"}`,
		`{"name":"  ","email":"alice@example.com","message":"hello"}`,
	} {
		rec := httptest.NewRecorder()
		h.HandleSend(rec, postJSON(body))
		if rec.Code != http.StatusBadRequest {
			t.Errorf("body %s status = %d, want 400", body, rec.Code)
		}
	}
}

func TestHandleSend_MarkupOnlyMessageIsEmpty(t *testing.T) {
	h := newTestHandler("office@example.com")

	// Sanitization strips the tags; what remains is blank and must be
	// rejected like any other missing field.
	rec := httptest.NewRecorder()
	h.HandleSend(rec, postJSON(`{"name":"Alice","email":"alice@example.com","message":"<script>alert(1)</script>"}`))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400: %s", rec.Code, rec.Body.String())
	}
}

func TestHandleSend_DeliveryFailureIs500(t *testing.T) {
	// An empty recipient makes the mailer fail before touching the
	// network, which exercises the dependency-error path.
	h := newTestHandler("")

	rec := httptest.NewRecorder()
	h.HandleSend(rec, postJSON(`{"name":"Alice","email":"alice@example.com","message":"hello"}`))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500: %s", rec.Code, rec.Body.String())
	}
}
