// internal/app/features/tickets/tickets.go
package tickets

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	projectstore "github.com/ticketry/ticketry/internal/app/store/projects"
	"github.com/ticketry/ticketry/internal/app/system/auth"
	"github.com/ticketry/ticketry/internal/app/system/httpjson"
	"github.com/ticketry/ticketry/internal/app/system/inputval"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// writeStoreError maps project store sentinels onto HTTP responses.
func (h *Handler) writeStoreError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		httpjson.Msg(w, http.StatusNotFound, "Project not found")
	case errors.Is(err, projectstore.ErrNotMember):
		httpjson.Msg(w, http.StatusForbidden, "You are not a member of this project")
	case errors.Is(err, projectstore.ErrTicketNotFound):
		httpjson.Msg(w, http.StatusNotFound, "Ticket not found")
	case errors.Is(err, projectstore.ErrCommentNotFound):
		httpjson.Msg(w, http.StatusNotFound, "Comment not found")
	case errors.Is(err, projectstore.ErrNotCommentAuthor):
		httpjson.Msg(w, http.StatusForbidden, "Only the comment author may remove it")
	default:
		httpjson.ServerError(w, h.Log, op, err)
	}
}

// param pulls and validates an ObjectID URL parameter, answering 404
// with the given message when it is malformed.
func param(w http.ResponseWriter, r *http.Request, name, missing string) (primitive.ObjectID, bool) {
	raw := chi.URLParam(r, name)
	if !inputval.IsValidObjectID(raw) {
		httpjson.Msg(w, http.StatusNotFound, missing)
		return primitive.NilObjectID, false
	}
	id, _ := primitive.ObjectIDFromHex(raw)
	return id, true
}

type createRequest struct {
	Ticket   string `json:"ticket"`
	Severity string `json:"severity"`
	Status   string `json:"status"`
}

// Create handles POST /api/tickets/{project_id}. Returns the
// project's full ticket list with the new ticket at the tail.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	ident, ok := auth.CurrentIdentity(r)
	if !ok {
		httpjson.Msg(w, http.StatusUnauthorized, "No token, authorization denied")
		return
	}
	projectID, ok := param(w, r, "project_id", "Project not found")
	if !ok {
		return
	}

	var req createRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Msg(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Ticket) == "" {
		httpjson.FieldErrors(w, "Ticket text is required.")
		return
	}

	ticket, err := h.Projects.AddTicket(r.Context(), projectID, ident.MemberRef(), projectstore.TicketInput{
		Description: req.Ticket,
		Severity:    req.Severity,
		Status:      req.Status,
	})
	if err != nil {
		h.writeStoreError(w, "tickets: create", err)
		return
	}

	h.Log.Info("tickets: created",
		zap.String("project_id", projectID.Hex()),
		zap.String("ticket_id", ticket.ID.Hex()),
		zap.String("creator_id", ident.UserID.Hex()))

	tickets, err := h.Projects.Tickets(r.Context(), projectID, ident.UserID)
	if err != nil {
		h.writeStoreError(w, "tickets: create", err)
		return
	}
	httpjson.Write(w, http.StatusOK, tickets)
}

// List handles GET /api/tickets/{project_id} (member-gated).
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ident, ok := auth.CurrentIdentity(r)
	if !ok {
		httpjson.Msg(w, http.StatusUnauthorized, "No token, authorization denied")
		return
	}
	projectID, ok := param(w, r, "project_id", "Project not found")
	if !ok {
		return
	}

	tickets, err := h.Projects.Tickets(r.Context(), projectID, ident.UserID)
	if err != nil {
		h.writeStoreError(w, "tickets: list", err)
		return
	}
	httpjson.Write(w, http.StatusOK, tickets)
}

// Get handles GET /api/tickets/{project_id}/{ticket_id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	ident, ok := auth.CurrentIdentity(r)
	if !ok {
		httpjson.Msg(w, http.StatusUnauthorized, "No token, authorization denied")
		return
	}
	projectID, ok := param(w, r, "project_id", "Project not found")
	if !ok {
		return
	}
	ticketID, ok := param(w, r, "ticket_id", "Ticket not found")
	if !ok {
		return
	}

	ticket, err := h.Projects.GetTicket(r.Context(), projectID, ident.UserID, ticketID)
	if err != nil {
		h.writeStoreError(w, "tickets: get", err)
		return
	}
	httpjson.Write(w, http.StatusOK, ticket)
}

// Delete handles DELETE /api/tickets/{project_id}/{ticket_id}. Any
// member may remove a ticket.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	ident, ok := auth.CurrentIdentity(r)
	if !ok {
		httpjson.Msg(w, http.StatusUnauthorized, "No token, authorization denied")
		return
	}
	projectID, ok := param(w, r, "project_id", "Project not found")
	if !ok {
		return
	}
	ticketID, ok := param(w, r, "ticket_id", "Ticket not found")
	if !ok {
		return
	}

	if err := h.Projects.RemoveTicket(r.Context(), projectID, ident.UserID, ticketID); err != nil {
		h.writeStoreError(w, "tickets: delete", err)
		return
	}

	h.Log.Info("tickets: deleted",
		zap.String("project_id", projectID.Hex()),
		zap.String("ticket_id", ticketID.Hex()),
		zap.String("actor_id", ident.UserID.Hex()))
	httpjson.Msg(w, http.StatusOK, "Ticket deleted")
}
