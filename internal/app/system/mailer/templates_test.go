package mailer

import (
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestBuildContactEmail(t *testing.T) {
	e := BuildContactEmail(ContactEmailData{
		Name:    "Alice Chen",
		Email:   "alice@example.com",
		Message: "The choir page will not load for me.",
	})

	if !strings.Contains(e.Subject, "Alice Chen") {
		t.Errorf("Subject = %q, want the sender's name", e.Subject)
	}
	for _, want := range []string{"Alice Chen", "alice@example.com", "The choir page will not load for me."} {
		if !strings.Contains(e.TextBody, want) {
			t.Errorf("TextBody missing %q", want)
		}
		if !strings.Contains(e.HTMLBody, want) {
			t.Errorf("HTMLBody missing %q", want)
		}
	}
}

func TestBuildContactEmail_HTMLEscapesMarkup(t *testing.T) {
	e := BuildContactEmail(ContactEmailData{
		Name:    "Eve",
		Email:   "eve@example.com",
		Message: `<script>alert("x")</script>`,
	})

	if strings.Contains(e.HTMLBody, "<script>") {
		t.Error("HTMLBody contains unescaped script tag")
	}
}

func TestSend_RequiresRecipient(t *testing.T) {
	m := New("localhost", 1025, "", "", "noreply@congregate.app", "Congregate", zap.NewNop())
	if err := m.Send(Email{Subject: "hi", TextBody: "hello"}); err == nil {
		t.Fatal("Send() accepted an email without a recipient")
	}
}
