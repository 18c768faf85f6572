// internal/app/features/users/login.go
package users

import (
	"context"
	"net/http"
	"strings"

	"github.com/dalemusser/congregate/internal/app/system/apierr"
	"github.com/dalemusser/congregate/internal/app/system/httpjson"
	"github.com/dalemusser/congregate/internal/app/system/timeouts"
	"github.com/dalemusser/congregate/internal/domain/models"
	"golang.org/x/crypto/bcrypt"
	"go.uber.org/zap"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// HandleLogin handles POST /users/login. Unknown email is 404; a wrong
// password is 401. The comparison goes through bcrypt against the
// stored hash.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		httpjson.WriteError(w, h.Log, apierr.New(apierr.Validation,
			"email and password fields are required in the body"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		httpjson.WriteError(w, h.Log, apierr.FromStore(err, "could not find user with that email"))
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(req.Password)); err != nil {
		httpjson.WriteError(w, h.Log, apierr.New(apierr.Auth, "incorrect password"))
		return
	}

	token, err := h.Tokens.Issue(u.ID.Hex(), u.Email)
	if err != nil {
		httpjson.WriteError(w, h.Log, apierr.Wrap(apierr.Dependency, "could not issue token", err))
		return
	}

	h.Log.Info("user logged in", zap.String("user_id", u.ID.Hex()))
	httpjson.Write(w, http.StatusOK, loginResponse{Token: token, User: *u})
}
