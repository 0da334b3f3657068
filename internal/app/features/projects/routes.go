// internal/app/features/projects/routes.go
package projects

import (
	"github.com/go-chi/chi/v5"
	"github.com/ticketry/ticketry/internal/app/system/auth"
)

// Routes returns the projects subrouter, mounted under /api/projects.
// Listing is public; everything else is member-scoped and needs a
// token.
func Routes(h *Handler, tokens *auth.TokenManager) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.List)

	r.Group(func(r chi.Router) {
		r.Use(tokens.RequireToken)
		r.Post("/", h.Create)
		r.Get("/{project_id}", h.Get)
		r.Delete("/{project_id}", h.Delete)
		r.Get("/{project_id}/members", h.ListMembers)
		r.Put("/{project_id}/members/{user_id}", h.AddMember)
		r.Delete("/{project_id}/members/{user_id}", h.RemoveMember)
	})

	return r
}
