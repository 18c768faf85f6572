// internal/app/features/songs/routes.go
package songs

import (
	"github.com/dalemusser/congregate/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the song catalog and attachment-signature endpoints.
// Everything requires a signed-in user.
func Routes(h *Handler, tm *auth.TokenManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(tm.RequireSignedIn)

		pr.Get("/", h.ServeList)
		pr.Post("/", h.HandleCreate)
		pr.Get("/{id}", h.ServeSong)
		pr.Put("/{id}", h.HandleEdit)
		pr.Delete("/{id}", h.HandleDelete)

		pr.Put("/{id}/addurl", h.HandleAddURL)
		pr.Delete("/{id}/removeurl", h.HandleRemoveURL)

		pr.Post("/{id}/attachment-upload-signature", h.HandleUploadSignature)
		pr.Get("/{id}/attachment-list", h.ServeAttachmentList)
		pr.Post("/{id}/attachment-download-signature", h.HandleDownloadSignature)
		pr.Delete("/{id}/attachment", h.HandleDeleteAttachment)
	})

	return r
}
