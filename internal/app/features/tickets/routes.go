// internal/app/features/tickets/routes.go
package tickets

import (
	"github.com/go-chi/chi/v5"
	"github.com/ticketry/ticketry/internal/app/system/auth"
)

// Routes returns the tickets subrouter, mounted under /api/tickets.
// Every route is member-scoped and needs a token.
func Routes(h *Handler, tokens *auth.TokenManager) chi.Router {
	r := chi.NewRouter()
	r.Use(tokens.RequireToken)

	r.Post("/{project_id}", h.Create)
	r.Get("/{project_id}", h.List)
	r.Get("/{project_id}/{ticket_id}", h.Get)
	r.Delete("/{project_id}/{ticket_id}", h.Delete)
	r.Post("/{project_id}/{ticket_id}/comment", h.AddComment)
	r.Delete("/{project_id}/{ticket_id}/comment/{comment_id}", h.DeleteComment)

	return r
}
