// internal/app/features/users/edit.go
package users

import (
	"context"
	"net/http"

	userstore "github.com/dalemusser/congregate/internal/app/store/users"
	"github.com/dalemusser/congregate/internal/app/system/apierr"
	"github.com/dalemusser/congregate/internal/app/system/httpjson"
	"github.com/dalemusser/congregate/internal/app/system/timeouts"
	"golang.org/x/crypto/bcrypt"
	"go.uber.org/zap"
)

type updateRequest struct {
	FirstName string  `json:"firstName"`
	LastName  *string `json:"lastName"`
	Password  string  `json:"password"`
}

// HandleUpdate handles PUT /users/{id}: a partial profile edit. Email
// is immutable; a new password is re-hashed before it is stored.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := httpjson.ParamID(r, "id")
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}

	var req updateRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}

	upd := userstore.ProfileUpdate{
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			httpjson.WriteError(w, h.Log, apierr.Wrap(apierr.Dependency, "could not update user", err))
			return
		}
		upd.PasswordHash = string(hash)
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.Users.UpdateProfile(ctx, id, upd)
	if err != nil {
		httpjson.WriteError(w, h.Log, apierr.FromStore(err, "could not find user by that id"))
		return
	}
	httpjson.Write(w, http.StatusOK, u)
}

// HandleDelete handles DELETE /users/{id}. Group membership rows are
// cleaned up (best effort) before the user document goes away.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := httpjson.ParamID(r, "id")
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	u, err := h.Membership.RemoveUser(ctx, id)
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}

	h.Log.Info("user deleted", zap.String("user_id", id.Hex()))
	httpjson.Write(w, http.StatusOK, u)
}
