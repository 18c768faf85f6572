// internal/app/features/songs/create.go
package songs

import (
	"context"
	"net/http"
	"strings"

	"github.com/dalemusser/congregate/internal/app/system/apierr"
	"github.com/dalemusser/congregate/internal/app/system/httpjson"
	"github.com/dalemusser/congregate/internal/app/system/timeouts"
	"github.com/dalemusser/congregate/internal/domain/models"
	"go.uber.org/zap"
)

type createRequest struct {
	Title         string              `json:"title"`
	BPM           int                 `json:"bpm"`
	ReferenceURLs []string            `json:"referenceUrls"`
	Attachments   []models.Attachment `json:"attachments"`
}

// HandleCreate handles POST /songs.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		httpjson.WriteError(w, h.Log, apierr.New(apierr.Validation, "title field is required"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	sg, err := h.Songs.Create(ctx, models.Song{
		Title:         title,
		BPM:           req.BPM,
		ReferenceURLs: req.ReferenceURLs,
		Attachments:   req.Attachments,
	})
	if err != nil {
		httpjson.WriteError(w, h.Log, apierr.Wrap(apierr.Dependency, "could not create song", err))
		return
	}

	h.Log.Info("song created", zap.String("song_id", sg.ID.Hex()), zap.String("title", sg.Title))
	httpjson.Write(w, http.StatusCreated, sg)
}
