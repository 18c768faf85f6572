// internal/app/features/events/view.go
package events

import (
	"context"
	"net/http"

	"github.com/dalemusser/congregate/internal/app/system/apierr"
	"github.com/dalemusser/congregate/internal/app/system/httpjson"
	"github.com/dalemusser/congregate/internal/app/system/timeouts"
	"github.com/dalemusser/congregate/internal/domain/models"
)

// ServeList handles GET /events. An optional ?group=<id> query narrows
// the listing to a single group's events.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	var (
		list []models.Event
		err  error
	)
	if raw := r.URL.Query().Get("group"); raw != "" {
		groupID, perr := httpjson.ParseID(raw, "group")
		if perr != nil {
			httpjson.WriteError(w, h.Log, perr)
			return
		}
		list, err = h.Events.ListByGroup(ctx, groupID)
	} else {
		list, err = h.Events.List(ctx)
	}
	if err != nil {
		httpjson.WriteError(w, h.Log, apierr.Wrap(apierr.Dependency, "could not list events", err))
		return
	}
	httpjson.Write(w, http.StatusOK, list)
}

// ServeEvent handles GET /events/{id}.
func (h *Handler) ServeEvent(w http.ResponseWriter, r *http.Request) {
	id, err := httpjson.ParamID(r, "id")
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	e, err := h.Events.GetByID(ctx, id)
	if err != nil {
		httpjson.WriteError(w, h.Log, apierr.FromStore(err, "could not find event by that id"))
		return
	}
	httpjson.Write(w, http.StatusOK, e)
}
