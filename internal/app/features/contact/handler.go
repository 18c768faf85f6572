// internal/app/features/contact/handler.go
package contact

import (
	"net/http"
	"strings"

	"github.com/dalemusser/congregate/internal/app/system/apierr"
	"github.com/dalemusser/congregate/internal/app/system/httpjson"
	"github.com/dalemusser/congregate/internal/app/system/mailer"
	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"
)

// Handler delivers contact-form messages to the configured address.
type Handler struct {
	Mail     *mailer.Mailer
	To       string
	sanitize *bluemonday.Policy
	Log      *zap.Logger
}

func NewHandler(mail *mailer.Mailer, to string, logger *zap.Logger) *Handler {
	return &Handler{
		Mail:     mail,
		To:       to,
		sanitize: bluemonday.StrictPolicy(),
		Log:      logger,
	}
}

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// HandleSend handles POST /contact. All fields are stripped of markup
// before they reach the outgoing email.
func (h *Handler) HandleSend(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}

	name := strings.TrimSpace(h.sanitize.Sanitize(req.Name))
	email := strings.TrimSpace(h.sanitize.Sanitize(req.Email))
	message := strings.TrimSpace(h.sanitize.Sanitize(req.Message))
	if name == "" || email == "" || message == "" {
		httpjson.WriteError(w, h.Log, apierr.New(apierr.Validation, "name, email, and message fields are required"))
		return
	}

	e := mailer.BuildContactEmail(mailer.ContactEmailData{
		Name:    name,
		Email:   email,
		Message: message,
	})
	e.To = h.To

	if err := h.Mail.Send(e); err != nil {
		httpjson.WriteError(w, h.Log, apierr.Wrap(apierr.Dependency, "could not send contact message", err))
		return
	}

	h.Log.Info("contact message sent", zap.String("from", email))
	httpjson.Write(w, http.StatusOK, map[string]string{"message": "message sent"})
}
