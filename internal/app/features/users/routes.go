// internal/app/features/users/routes.go
package users

import (
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	// Public: account creation and login.
	r.Post("/register", h.HandleRegister)
	r.Post("/login", h.HandleLogin)

	// Everything else requires a bearer token.
	r.Group(func(pr chi.Router) {
		pr.Use(h.Tokens.RequireSignedIn)

		pr.Get("/whoami", h.ServeWhoAmI)
		pr.Get("/", h.ServeList)
		pr.Get("/{id}", h.ServeUser)
		pr.Put("/{id}", h.HandleUpdate)
		pr.Delete("/{id}", h.HandleDelete)
		pr.Get("/{id}/groups", h.ServeUserGroups)
	})

	return r
}
