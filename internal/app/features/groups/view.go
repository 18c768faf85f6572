// internal/app/features/groups/view.go
package groups

import (
	"context"
	"net/http"

	"github.com/dalemusser/congregate/internal/app/system/apierr"
	"github.com/dalemusser/congregate/internal/app/system/httpjson"
	"github.com/dalemusser/congregate/internal/app/system/timeouts"
)

// ServeList handles GET /groups.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	groups, err := h.Groups.List(ctx)
	if err != nil {
		httpjson.WriteError(w, h.Log, apierr.Wrap(apierr.Dependency, "could not get groups", err))
		return
	}
	httpjson.Write(w, http.StatusOK, groups)
}

// ServeGroup handles GET /groups/{id}.
func (h *Handler) ServeGroup(w http.ResponseWriter, r *http.Request) {
	id, err := httpjson.ParamID(r, "id")
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	g, err := h.Groups.GetByID(ctx, id)
	if err != nil {
		httpjson.WriteError(w, h.Log, apierr.FromStore(err, "could not find group by that id"))
		return
	}
	httpjson.Write(w, http.StatusOK, g)
}
