// internal/app/features/users/view.go
package users

import (
	"context"
	"net/http"

	"github.com/dalemusser/congregate/internal/app/system/apierr"
	"github.com/dalemusser/congregate/internal/app/system/auth"
	"github.com/dalemusser/congregate/internal/app/system/httpjson"
	"github.com/dalemusser/congregate/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ServeWhoAmI handles GET /users/whoami: the profile of the token's
// subject.
func (h *Handler) ServeWhoAmI(w http.ResponseWriter, r *http.Request) {
	su, ok := auth.CurrentUser(r)
	if !ok {
		httpjson.WriteError(w, h.Log, apierr.New(apierr.Auth, "Authorization token required"))
		return
	}
	id, err := primitive.ObjectIDFromHex(su.ID)
	if err != nil {
		httpjson.WriteError(w, h.Log, apierr.New(apierr.Forbidden, "Token invalid"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.Users.GetByID(ctx, id)
	if err != nil {
		httpjson.WriteError(w, h.Log, apierr.FromStore(err, "could not find user by that id"))
		return
	}
	httpjson.Write(w, http.StatusOK, u)
}

// ServeList handles GET /users.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	users, err := h.Users.List(ctx)
	if err != nil {
		httpjson.WriteError(w, h.Log, apierr.Wrap(apierr.Dependency, "could not get users", err))
		return
	}
	httpjson.Write(w, http.StatusOK, users)
}

// ServeUser handles GET /users/{id}.
func (h *Handler) ServeUser(w http.ResponseWriter, r *http.Request) {
	id, err := httpjson.ParamID(r, "id")
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.Users.GetByID(ctx, id)
	if err != nil {
		httpjson.WriteError(w, h.Log, apierr.FromStore(err, "could not find user by that id"))
		return
	}
	httpjson.Write(w, http.StatusOK, u)
}

type userGroupsResponse struct {
	Groups []string `json:"groups"`
}

// ServeUserGroups handles GET /users/{id}/groups: the ids of the groups
// the user belongs to.
func (h *Handler) ServeUserGroups(w http.ResponseWriter, r *http.Request) {
	id, err := httpjson.ParamID(r, "id")
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.Users.GetByID(ctx, id)
	if err != nil {
		httpjson.WriteError(w, h.Log, apierr.FromStore(err, "could not find user by that id"))
		return
	}

	ids := make([]string, len(u.Groups))
	for i, gid := range u.Groups {
		ids[i] = gid.Hex()
	}
	httpjson.Write(w, http.StatusOK, userGroupsResponse{Groups: ids})
}
