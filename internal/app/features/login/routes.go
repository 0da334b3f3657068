// internal/app/features/login/routes.go
package login

import "github.com/go-chi/chi/v5"

// Routes returns the auth subrouter, mounted under /api/auth. Login is
// public; resolving a token back to a user requires the token.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Login)
	r.With(h.Tokens.RequireToken).Get("/", h.Resolve)
	return r
}
