// internal/app/features/live/handler.go
package live

import (
	"context"
	"net/http"

	"github.com/dalemusser/congregate/internal/app/system/apierr"
	"github.com/dalemusser/congregate/internal/app/system/httpjson"
	"github.com/dalemusser/congregate/internal/app/system/livestream"
	"github.com/dalemusser/congregate/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Handler answers whether a channel is currently streaming.
type Handler struct {
	Streams *livestream.Client
	Log     *zap.Logger
}

func NewHandler(c *livestream.Client, logger *zap.Logger) *Handler {
	return &Handler{Streams: c, Log: logger}
}

type liveResponse struct {
	Channel string `json:"channel"`
	Live    bool   `json:"live"`
}

// ServeStatus handles GET /live/{channel}.
func (h *Handler) ServeStatus(w http.ResponseWriter, r *http.Request) {
	channel := chi.URLParam(r, "channel")
	if channel == "" {
		httpjson.WriteError(w, h.Log, apierr.New(apierr.Validation, "channel is required"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	live, err := h.Streams.IsLive(ctx, channel)
	if err != nil {
		httpjson.WriteError(w, h.Log, apierr.Wrap(apierr.Provider, "could not check stream status", err))
		return
	}
	httpjson.Write(w, http.StatusOK, liveResponse{Channel: channel, Live: live})
}
