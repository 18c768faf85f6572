// internal/app/features/songs/urls.go
package songs

import (
	"context"
	"net/http"
	"strings"

	"github.com/dalemusser/congregate/internal/app/system/apierr"
	"github.com/dalemusser/congregate/internal/app/system/httpjson"
	"github.com/dalemusser/congregate/internal/app/system/timeouts"
)

type urlRequest struct {
	URL string `json:"url"`
}

// HandleAddURL handles PUT /songs/{id}/addurl. The URL is appended as
// given; duplicates are allowed.
func (h *Handler) HandleAddURL(w http.ResponseWriter, r *http.Request) {
	id, err := httpjson.ParamID(r, "id")
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}
	var req urlRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}
	url := strings.TrimSpace(req.URL)
	if url == "" {
		httpjson.WriteError(w, h.Log, apierr.New(apierr.Validation, "url field is required"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Songs.AddReferenceURL(ctx, id, url); err != nil {
		httpjson.WriteError(w, h.Log, apierr.FromStore(err, "could not find song by that id"))
		return
	}
	httpjson.Write(w, http.StatusOK, map[string]string{"message": "url added"})
}

// HandleRemoveURL handles DELETE /songs/{id}/removeurl. Every
// occurrence of the URL is removed; removing an absent URL succeeds.
func (h *Handler) HandleRemoveURL(w http.ResponseWriter, r *http.Request) {
	id, err := httpjson.ParamID(r, "id")
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}
	var req urlRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}
	url := strings.TrimSpace(req.URL)
	if url == "" {
		httpjson.WriteError(w, h.Log, apierr.New(apierr.Validation, "url field is required"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Songs.RemoveReferenceURL(ctx, id, url); err != nil {
		httpjson.WriteError(w, h.Log, apierr.FromStore(err, "could not find song by that id"))
		return
	}
	httpjson.Write(w, http.StatusOK, map[string]string{"message": "url removed"})
}
