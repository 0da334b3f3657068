// internal/app/features/projects/members.go
package projects

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/ticketry/ticketry/internal/app/system/auth"
	"github.com/ticketry/ticketry/internal/app/system/httpjson"
	"github.com/ticketry/ticketry/internal/app/system/inputval"
	"github.com/ticketry/ticketry/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// memberID pulls and validates the {user_id} URL parameter.
func memberID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	raw := chi.URLParam(r, "user_id")
	if !inputval.IsValidObjectID(raw) {
		httpjson.Msg(w, http.StatusNotFound, "User not found")
		return primitive.NilObjectID, false
	}
	id, _ := primitive.ObjectIDFromHex(raw)
	return id, true
}

// ListMembers handles GET /api/projects/{project_id}/members
// (member-gated).
func (h *Handler) ListMembers(w http.ResponseWriter, r *http.Request) {
	ident, ok := auth.CurrentIdentity(r)
	if !ok {
		httpjson.Msg(w, http.StatusUnauthorized, "No token, authorization denied")
		return
	}
	id, ok := projectID(w, r)
	if !ok {
		return
	}

	members, err := h.Projects.Members(r.Context(), id)
	if err != nil {
		h.writeStoreError(w, "projects: list members", err)
		return
	}

	isMember := false
	for _, m := range members {
		if m.UserID == ident.UserID {
			isMember = true
			break
		}
	}
	if !isMember {
		httpjson.Msg(w, http.StatusForbidden, "You are not a member of this project")
		return
	}
	httpjson.Write(w, http.StatusOK, members)
}

// AddMember handles PUT /api/projects/{project_id}/members/{user_id}.
// Adding someone who is already a member succeeds without a second
// entry.
func (h *Handler) AddMember(w http.ResponseWriter, r *http.Request) {
	ident, ok := auth.CurrentIdentity(r)
	if !ok {
		httpjson.Msg(w, http.StatusUnauthorized, "No token, authorization denied")
		return
	}
	id, ok := projectID(w, r)
	if !ok {
		return
	}
	targetID, ok := memberID(w, r)
	if !ok {
		return
	}

	target, err := h.Users.GetByID(r.Context(), targetID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.Msg(w, http.StatusNotFound, "User not found")
			return
		}
		httpjson.ServerError(w, h.Log, "projects: load target user", err)
		return
	}

	added, err := h.Projects.AddMember(r.Context(), id, ident.UserID,
		models.MemberRef{UserID: target.ID, Name: target.Name})
	if err != nil {
		h.writeStoreError(w, "projects: add member", err)
		return
	}
	if added {
		h.Log.Info("projects: member added",
			zap.String("project_id", id.Hex()),
			zap.String("user_id", targetID.Hex()),
			zap.String("actor_id", ident.UserID.Hex()))
	}

	members, err := h.Projects.Members(r.Context(), id)
	if err != nil {
		h.writeStoreError(w, "projects: add member", err)
		return
	}
	httpjson.Write(w, http.StatusOK, members)
}

// RemoveMember handles DELETE
// /api/projects/{project_id}/members/{user_id}. The last member cannot
// be removed; delete the project instead.
func (h *Handler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	ident, ok := auth.CurrentIdentity(r)
	if !ok {
		httpjson.Msg(w, http.StatusUnauthorized, "No token, authorization denied")
		return
	}
	id, ok := projectID(w, r)
	if !ok {
		return
	}
	targetID, ok := memberID(w, r)
	if !ok {
		return
	}

	if err := h.Projects.RemoveMember(r.Context(), id, ident.UserID, targetID); err != nil {
		h.writeStoreError(w, "projects: remove member", err)
		return
	}

	h.Log.Info("projects: member removed",
		zap.String("project_id", id.Hex()),
		zap.String("user_id", targetID.Hex()),
		zap.String("actor_id", ident.UserID.Hex()))

	members, err := h.Projects.Members(r.Context(), id)
	if err != nil {
		h.writeStoreError(w, "projects: remove member", err)
		return
	}
	httpjson.Write(w, http.StatusOK, members)
}
