// internal/app/features/users/routes.go
package users

import "github.com/go-chi/chi/v5"

// Routes returns the registration subrouter, mounted under /api/users.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Register)
	return r
}
