// internal/app/features/groups/join.go
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

type joinRequest struct {
	Code string `json:"code"`
}

// HandleJoin handles POST /groups/join: self-service membership by join
// code. Joining a group twice is rejected with a conflict.
func (h *Handler) HandleJoin(w http.ResponseWriter, r *http.Request) {
	var req joinRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}
	if strings.TrimSpace(req.Code) == "" {
		httpjson.WriteError(w, h.Log, apierr.New(apierr.Validation, "code field is required"))
		return
	}

	su, ok := auth.CurrentUser(r)
	if !ok {
		httpjson.WriteError(w, h.Log, apierr.New(apierr.Auth, "Authorization token required"))
		return
	}
	userID, err := primitive.ObjectIDFromHex(su.ID)
	if err != nil {
		httpjson.WriteError(w, h.Log, apierr.New(apierr.Forbidden, "Token invalid"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	g, err := h.Membership.JoinGroup(ctx, req.Code, userID)
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}

	h.Log.Info("user joined group",
		zap.String("group_id", g.ID.Hex()),
		zap.String("user_id", userID.Hex()))
	httpjson.Write(w, http.StatusOK, g)
}

type leaveRequest struct {
	GroupID string `json:"groupId"`
}

// HandleLeave handles POST /groups/leave.
func (h *Handler) HandleLeave(w http.ResponseWriter, r *http.Request) {
	var req leaveRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}
	groupID, err := httpjson.ParseID(req.GroupID, "groupId")
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}

	su, ok := auth.CurrentUser(r)
	if !ok {
		httpjson.WriteError(w, h.Log, apierr.New(apierr.Auth, "Authorization token required"))
		return
	}
	userID, err := primitive.ObjectIDFromHex(su.ID)
	if err != nil {
		httpjson.WriteError(w, h.Log, apierr.New(apierr.Forbidden, "Token invalid"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Membership.LeaveGroup(ctx, groupID, userID); err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}

	httpjson.Write(w, http.StatusOK, map[string]string{"message": "left group"})
}
