// internal/app/features/songs/view.go
package songs

import (
	"context"
	"net/http"

	"github.com/dalemusser/congregate/internal/app/system/apierr"
	"github.com/dalemusser/congregate/internal/app/system/httpjson"
	"github.com/dalemusser/congregate/internal/app/system/timeouts"
)

// ServeList handles GET /songs.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	list, err := h.Songs.List(ctx)
	if err != nil {
		httpjson.WriteError(w, h.Log, apierr.Wrap(apierr.Dependency, "could not list songs", err))
		return
	}
	httpjson.Write(w, http.StatusOK, list)
}

// ServeSong handles GET /songs/{id}.
func (h *Handler) ServeSong(w http.ResponseWriter, r *http.Request) {
	id, err := httpjson.ParamID(r, "id")
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	sg, err := h.Songs.GetByID(ctx, id)
	if err != nil {
		httpjson.WriteError(w, h.Log, apierr.FromStore(err, "could not find song by that id"))
		return
	}
	httpjson.Write(w, http.StatusOK, sg)
}
