// internal/app/features/events/edit.go
package events

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	eventstore "github.com/dalemusser/congregate/internal/app/store/events"
	"github.com/dalemusser/congregate/internal/app/system/apierr"
	"github.com/dalemusser/congregate/internal/app/system/httpjson"
	"github.com/dalemusser/congregate/internal/app/system/timeouts"
	"github.com/dalemusser/congregate/internal/domain/models"
	"go.uber.org/zap"
)

type editRequest struct {
	Name      string                  `json:"name"`
	EventDate string                  `json:"eventDate"`
	Roles     []models.RoleAssignment `json:"roles"`
}

// HandleEdit handles PUT /events/{id}. Name, date, and role
// assignments may change; the owning group is fixed at creation.
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

	upd := eventstore.InfoUpdate{
		Name:  strings.TrimSpace(req.Name),
		Roles: req.Roles,
	}
	if req.EventDate != "" {
		date, perr := time.Parse(time.RFC3339, req.EventDate)
		if perr != nil {
			httpjson.WriteError(w, h.Log, apierr.New(apierr.Validation, "eventDate must be an RFC 3339 timestamp"))
			return
		}
		upd.Date = &date
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	e, err := h.Events.UpdateInfo(ctx, id, upd)
	if err != nil {
		httpjson.WriteError(w, h.Log, apierr.FromStore(err, "could not find event by that id"))
		return
	}
	httpjson.Write(w, http.StatusOK, e)
}

// HandleDelete handles DELETE /events/{id}. The event is removed and
// unlinked from its group's events list.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := httpjson.ParamID(r, "id")
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	e, err := h.Membership.DeleteEvent(ctx, id)
	if err != nil {
		var pf *apierr.PartialFailure
		if errors.As(err, &pf) {
			h.Log.Error("event deleted without group update", zap.Error(pf))
		}
		httpjson.WriteError(w, h.Log, err)
		return
	}

	h.Log.Info("event deleted", zap.String("event_id", id.Hex()))
	httpjson.Write(w, http.StatusOK, deleteResponse{Message: "event deleted", DeletedEvent: e})
}

type deleteResponse struct {
	Message      string        `json:"message"`
	DeletedEvent *models.Event `json:"deletedEvent"`
}
