// internal/app/features/events/create.go
package events

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/dalemusser/congregate/internal/app/system/apierr"
	"github.com/dalemusser/congregate/internal/app/system/httpjson"
	"github.com/dalemusser/congregate/internal/app/system/timeouts"
	"github.com/dalemusser/congregate/internal/domain/models"
	"go.uber.org/zap"
)

type createRequest struct {
	GroupID   string `json:"groupId"`
	Name      string `json:"name"`
	EventDate string `json:"eventDate"` // RFC 3339
}

type createResponse struct {
	CreatedEvent models.Event  `json:"createdEvent"`
	UpdatedGroup *models.Group `json:"updatedGroup,omitempty"`
}

type partialCreateResponse struct {
	Error        string       `json:"error"`
	Succeeded    string       `json:"succeeded"`
	Failed       string       `json:"failed"`
	CreatedEvent models.Event `json:"createdEvent"`
}

// HandleCreate handles POST /events. The event is created under its
// owning group and the group's events list is updated in the same
// logical operation; if the group-side write fails after the event
// exists, the response is a 207 carrying the created event so the
// caller can reconcile.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}
	if req.GroupID == "" {
		httpjson.WriteError(w, h.Log, apierr.New(apierr.Validation, "groupId field is required"))
		return
	}
	if req.EventDate == "" {
		httpjson.WriteError(w, h.Log, apierr.New(apierr.Validation, "eventDate field is required"))
		return
	}
	groupID, err := httpjson.ParseID(req.GroupID, "groupId")
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}
	date, err := time.Parse(time.RFC3339, req.EventDate)
	if err != nil {
		httpjson.WriteError(w, h.Log, apierr.New(apierr.Validation, "eventDate must be an RFC 3339 timestamp"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	e, g, err := h.Membership.CreateEvent(ctx, groupID, strings.TrimSpace(req.Name), date)
	if err != nil {
		var pf *apierr.PartialFailure
		if errors.As(err, &pf) {
			h.Log.Error("event created without group update", zap.Error(pf))
			httpjson.Write(w, http.StatusMultiStatus, partialCreateResponse{
				Error:        pf.Message,
				Succeeded:    pf.Succeeded,
				Failed:       pf.Failed,
				CreatedEvent: e,
			})
			return
		}
		httpjson.WriteError(w, h.Log, err)
		return
	}

	h.Log.Info("event created",
		zap.String("event_id", e.ID.Hex()),
		zap.String("group_id", groupID.Hex()))
	httpjson.Write(w, http.StatusCreated, createResponse{CreatedEvent: e, UpdatedGroup: g})
}
