// internal/app/features/songs/edit.go
package songs

import (
	"context"
	"net/http"
	"strings"

	songstore "github.com/dalemusser/congregate/internal/app/store/songs"
	"github.com/dalemusser/congregate/internal/app/system/apierr"
	"github.com/dalemusser/congregate/internal/app/system/httpjson"
	"github.com/dalemusser/congregate/internal/app/system/timeouts"
	"github.com/dalemusser/congregate/internal/domain/models"
	"go.uber.org/zap"
)

type editRequest struct {
	Title       string              `json:"title"`
	BPM         *int                `json:"bpm"`
	Attachments []models.Attachment `json:"attachments"`
}

// HandleEdit handles PUT /songs/{id}. Reference URLs are edited through
// the addurl/removeurl endpoints, not here.
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

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	sg, err := h.Songs.UpdateInfo(ctx, id, songstore.InfoUpdate{
		Title:       strings.TrimSpace(req.Title),
		BPM:         req.BPM,
		Attachments: req.Attachments,
	})
	if err != nil {
		httpjson.WriteError(w, h.Log, apierr.FromStore(err, "could not find song by that id"))
		return
	}
	httpjson.Write(w, http.StatusOK, sg)
}

// HandleDelete handles DELETE /songs/{id}. Events that reference the
// song keep the dangling id; readers are expected to tolerate it.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := httpjson.ParamID(r, "id")
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	n, err := h.Songs.Delete(ctx, id)
	if err != nil {
		httpjson.WriteError(w, h.Log, apierr.Wrap(apierr.Dependency, "could not delete song", err))
		return
	}
	if n == 0 {
		httpjson.WriteError(w, h.Log, apierr.New(apierr.NotFound, "could not find song by that id"))
		return
	}

	h.Log.Info("song deleted", zap.String("song_id", id.Hex()))
	httpjson.Write(w, http.StatusOK, map[string]string{"message": "song deleted"})
}
