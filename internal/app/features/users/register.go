// internal/app/features/users/register.go
package users

import (
	"context"
	"errors"
	"net/http"
	"strings"

	userstore "github.com/dalemusser/congregate/internal/app/store/users"
	"github.com/dalemusser/congregate/internal/app/system/apierr"
	"github.com/dalemusser/congregate/internal/app/system/httpjson"
	"github.com/dalemusser/congregate/internal/app/system/timeouts"
	"github.com/dalemusser/congregate/internal/domain/models"
	"golang.org/x/crypto/bcrypt"
	"go.uber.org/zap"
)

type registerRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// HandleRegister handles POST /users/register.
//
// The plaintext password is hashed with bcrypt before it reaches the
// store and is never logged.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" || strings.TrimSpace(req.FirstName) == "" {
		httpjson.WriteError(w, h.Log, apierr.New(apierr.Validation,
			"email, password, and firstName fields are required in the body"))
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httpjson.WriteError(w, h.Log, apierr.Wrap(apierr.Dependency, "could not create user", err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	created, err := h.Users.Create(ctx, models.User{
		Email:     req.Email,
		Password:  string(hash),
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
	})
	if err != nil {
		if errors.Is(err, userstore.ErrDuplicateEmail) {
			httpjson.WriteError(w, h.Log, apierr.New(apierr.Conflict, err.Error()))
			return
		}
		httpjson.WriteError(w, h.Log, apierr.Wrap(apierr.Dependency, "could not create user", err))
		return
	}

	h.Log.Info("user registered", zap.String("user_id", created.ID.Hex()))
	httpjson.Write(w, http.StatusCreated, created)
}
