// internal/app/features/groups/edit.go
package groups

import (
	"context"
	"net/http"

	groupstore "github.com/dalemusser/congregate/internal/app/store/groups"
	"github.com/dalemusser/congregate/internal/app/system/httpjson"
	"github.com/dalemusser/congregate/internal/app/system/timeouts"
	"github.com/dalemusser/congregate/internal/app/system/apierr"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type editRequest struct {
	Name   string   `json:"name"`
	Admins []string `json:"admins"`
}

// HandleEdit handles PUT /groups/{id}: a partial edit of name and
// admin set. The join code and the membership/event lists are not
// editable here; memberships change only through join/leave and the
// events list only through event creation/deletion.
func (h *Handler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	id, err := httpjson.ParamID(r, "id")
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}

	var req editRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}

	upd := groupstore.InfoUpdate{Name: req.Name}
	if req.Admins != nil {
		admins := make([]primitive.ObjectID, 0, len(req.Admins))
		for _, raw := range req.Admins {
			aid, err := httpjson.ParseID(raw, "admins")
			if err != nil {
				httpjson.WriteError(w, h.Log, err)
				return
			}
			admins = append(admins, aid)
		}
		upd.Admins = admins
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	g, err := h.Groups.UpdateInfo(ctx, id, upd)
	if err != nil {
		httpjson.WriteError(w, h.Log, apierr.FromStore(err, "could not find group by that id"))
		return
	}
	httpjson.Write(w, http.StatusOK, g)
}

// HandleDelete handles DELETE /groups/{id}: cascading membership
// cleanup through the membership service, then the group itself.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := httpjson.ParamID(r, "id")
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	g, err := h.Membership.DeleteGroup(ctx, id)
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}

	h.Log.Info("group deleted", zap.String("group_id", id.Hex()))
	httpjson.Write(w, http.StatusOK, g)
}
