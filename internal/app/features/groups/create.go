// internal/app/features/groups/create.go
package groups

import (
	"context"
	"net/http"
	"strings"

	"github.com/dalemusser/congregate/internal/app/system/apierr"
	"github.com/dalemusser/congregate/internal/app/system/auth"
	"github.com/dalemusser/congregate/internal/app/system/httpjson"
	"github.com/dalemusser/congregate/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type createRequest struct {
	GroupName string `json:"groupName"`
	CreatorID string `json:"creatorId"` // optional; defaults to the token's subject
}

// HandleCreate handles POST /groups. The creator becomes the group's
// first admin and member, and the new group id is linked into the
// creator's membership set by the membership service.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}
	if strings.TrimSpace(req.GroupName) == "" {
		httpjson.WriteError(w, h.Log, apierr.New(apierr.Validation, "groupName field is required"))
		return
	}

	creatorHex := req.CreatorID
	if creatorHex == "" {
		su, ok := auth.CurrentUser(r)
		if !ok {
			httpjson.WriteError(w, h.Log, apierr.New(apierr.Auth, "Authorization token required"))
			return
		}
		creatorHex = su.ID
	}
	creatorID, err := primitive.ObjectIDFromHex(creatorHex)
	if err != nil {
		httpjson.WriteError(w, h.Log, apierr.New(apierr.Validation, "creatorId must be a valid object id"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	g, err := h.Membership.CreateGroup(ctx, strings.TrimSpace(req.GroupName), creatorID)
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}

	h.Log.Info("group created",
		zap.String("group_id", g.ID.Hex()),
		zap.String("creator_id", creatorID.Hex()))
	httpjson.Write(w, http.StatusCreated, g)
}
