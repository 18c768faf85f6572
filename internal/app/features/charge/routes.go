// internal/app/features/charge/routes.go
package charge

import "github.com/go-chi/chi/v5"

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.HandleCharge) // mounted under /charge
	return r
}
