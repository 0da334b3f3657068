// internal/app/features/tickets/comments.go
package tickets

import (
	"net/http"
	"strings"

	"github.com/ticketry/ticketry/internal/app/system/auth"
	"github.com/ticketry/ticketry/internal/app/system/httpjson"
	"go.uber.org/zap"
)

type commentRequest struct {
	Comment string `json:"comment"`
}

// AddComment handles POST /api/tickets/{project_id}/{ticket_id}/comment.
// Returns the ticket's full comment list with the new comment at the
// tail.
func (h *Handler) AddComment(w http.ResponseWriter, r *http.Request) {
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

	var req commentRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Msg(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Comment) == "" {
		httpjson.Msg(w, http.StatusBadRequest, "Need to enter a comment")
		return
	}

	if _, err := h.Projects.AddComment(r.Context(), projectID, ticketID, ident.MemberRef(), req.Comment); err != nil {
		h.writeStoreError(w, "tickets: add comment", err)
		return
	}

	ticket, err := h.Projects.GetTicket(r.Context(), projectID, ident.UserID, ticketID)
	if err != nil {
		h.writeStoreError(w, "tickets: add comment", err)
		return
	}
	httpjson.Write(w, http.StatusOK, ticket.Comments)
}

// DeleteComment handles DELETE
// /api/tickets/{project_id}/{ticket_id}/comment/{comment_id}. Only the
// comment's author may remove it.
func (h *Handler) DeleteComment(w http.ResponseWriter, r *http.Request) {
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
	commentID, ok := param(w, r, "comment_id", "Comment not found")
	if !ok {
		return
	}

	if err := h.Projects.RemoveComment(r.Context(), projectID, ticketID, commentID, ident.UserID); err != nil {
		h.writeStoreError(w, "tickets: delete comment", err)
		return
	}

	h.Log.Info("tickets: comment deleted",
		zap.String("project_id", projectID.Hex()),
		zap.String("ticket_id", ticketID.Hex()),
		zap.String("comment_id", commentID.Hex()),
		zap.String("actor_id", ident.UserID.Hex()))
	httpjson.Msg(w, http.StatusOK, "Comment deleted")
}
