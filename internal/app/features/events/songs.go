// internal/app/features/events/songs.go
package events

import (
	"context"
	"errors"
	"net/http"

	"github.com/dalemusser/congregate/internal/app/system/apierr"
	"github.com/dalemusser/congregate/internal/app/system/httpjson"
	"github.com/dalemusser/congregate/internal/app/system/membership"
	"github.com/dalemusser/congregate/internal/app/system/timeouts"
	"go.uber.org/zap"
)

type songRequest struct {
	SongID string `json:"songId"`
}

type songResponse struct {
	Message string `json:"message"`
}

// HandleAddSong handles POST /events/{id}/song. Adding a song that is
// already on the event is reported, not treated as an error.
func (h *Handler) HandleAddSong(w http.ResponseWriter, r *http.Request) {
	eventID, err := httpjson.ParamID(r, "id")
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}
	var req songRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}
	if req.SongID == "" {
		httpjson.WriteError(w, h.Log, apierr.New(apierr.Validation, "songId field is required"))
		return
	}
	songID, err := httpjson.ParseID(req.SongID, "songId")
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Membership.AddSongToEvent(ctx, eventID, songID); err != nil {
		if errors.Is(err, membership.ErrSongAlreadyPresent) {
			httpjson.Write(w, http.StatusOK, songResponse{Message: "song is already on this event"})
			return
		}
		httpjson.WriteError(w, h.Log, err)
		return
	}

	h.Log.Info("song added to event",
		zap.String("event_id", eventID.Hex()),
		zap.String("song_id", songID.Hex()))
	httpjson.Write(w, http.StatusCreated, songResponse{Message: "song added to event"})
}

// HandleRemoveSong handles DELETE /events/{id}/song. Removing a song
// the event does not carry succeeds as a no-op.
func (h *Handler) HandleRemoveSong(w http.ResponseWriter, r *http.Request) {
	eventID, err := httpjson.ParamID(r, "id")
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}
	var req songRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}
	songID, err := httpjson.ParseID(req.SongID, "songId")
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Membership.RemoveSongFromEvent(ctx, eventID, songID); err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}
	httpjson.Write(w, http.StatusOK, songResponse{Message: "song removed from event"})
}
