// internal/app/features/profile/routes.go
package profile

import (
	"github.com/go-chi/chi/v5"
	"github.com/ticketry/ticketry/internal/app/system/auth"
)

// Routes returns the profile subrouter, mounted under /api/profile.
// Reads of other people's profiles are public; everything touching the
// caller's own profile requires a token.
func Routes(h *Handler, tokens *auth.TokenManager) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.List)
	r.Get("/user/{user_id}", h.ByUser)

	r.Group(func(r chi.Router) {
		r.Use(tokens.RequireToken)
		r.Post("/", h.Upsert)
		r.Get("/me", h.Me)
		r.Delete("/", h.Delete)
	})

	return r
}
