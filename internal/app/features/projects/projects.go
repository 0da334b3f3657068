// internal/app/features/projects/projects.go
package projects

import (
	"errors"
	"net/http"

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
// Anything unrecognized is a 500.
func (h *Handler) writeStoreError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		httpjson.Msg(w, http.StatusNotFound, "Project not found")
	case errors.Is(err, projectstore.ErrNotMember):
		httpjson.Msg(w, http.StatusForbidden, "You are not a member of this project")
	case errors.Is(err, projectstore.ErrMemberNotFound):
		httpjson.Msg(w, http.StatusNotFound, "User is not a member of this project")
	case errors.Is(err, projectstore.ErrLastMember):
		httpjson.Msg(w, http.StatusBadRequest, "Cannot remove the last member of a project")
	default:
		httpjson.ServerError(w, h.Log, op, err)
	}
}

// projectID pulls and validates the {project_id} URL parameter. On a
// malformed id it writes a 404 and reports ok=false.
func projectID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	raw := chi.URLParam(r, "project_id")
	if !inputval.IsValidObjectID(raw) {
		httpjson.Msg(w, http.StatusNotFound, "Project not found")
		return primitive.NilObjectID, false
	}
	id, _ := primitive.ObjectIDFromHex(raw)
	return id, true
}

type createRequest struct {
	Title       string `json:"title" validate:"required" label:"Title"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

// Create handles POST /api/projects. The creator must already have a
// profile, and becomes the project's sole member.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	ident, ok := auth.CurrentIdentity(r)
	if !ok {
		httpjson.Msg(w, http.StatusUnauthorized, "No token, authorization denied")
		return
	}

	var req createRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Msg(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if result := inputval.Validate(req); result.HasErrors() {
		httpjson.FieldErrors(w, result.Messages()...)
		return
	}

	hasProfile, err := h.Profiles.Exists(r.Context(), ident.UserID)
	if err != nil {
		httpjson.ServerError(w, h.Log, "projects: check profile", err)
		return
	}
	if !hasProfile {
		httpjson.Msg(w, http.StatusBadRequest, "No profile found...")
		return
	}

	creator := ident.MemberRef()
	project, err := h.Projects.Create(r.Context(), creator, req.Title, req.Description, req.Status)
	if err != nil {
		if errors.Is(err, projectstore.ErrDuplicateTitle) {
			httpjson.Msg(w, http.StatusBadRequest, "Project by this name already exists...")
			return
		}
		httpjson.ServerError(w, h.Log, "projects: create", err)
		return
	}

	h.Log.Info("projects: created",
		zap.String("project_id", project.ID.Hex()),
		zap.String("creator_id", ident.UserID.Hex()))
	httpjson.Write(w, http.StatusOK, project)
}

// List handles GET /api/projects (public).
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	projects, err := h.Projects.List(r.Context())
	if err != nil {
		httpjson.ServerError(w, h.Log, "projects: list", err)
		return
	}
	httpjson.Write(w, http.StatusOK, projects)
}

// Get handles GET /api/projects/{project_id}. Member-gated: the full
// aggregate includes every ticket and comment.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	ident, ok := auth.CurrentIdentity(r)
	if !ok {
		httpjson.Msg(w, http.StatusUnauthorized, "No token, authorization denied")
		return
	}
	id, ok := projectID(w, r)
	if !ok {
		return
	}

	project, err := h.Projects.GetByID(r.Context(), id)
	if err != nil {
		h.writeStoreError(w, "projects: get", err)
		return
	}

	isMember := false
	for _, m := range project.Members {
		if m.UserID == ident.UserID {
			isMember = true
			break
		}
	}
	if !isMember {
		httpjson.Msg(w, http.StatusForbidden, "You are not a member of this project")
		return
	}
	httpjson.Write(w, http.StatusOK, project)
}

// Delete handles DELETE /api/projects/{project_id}. Any member may
// delete the project; derived profile back-references disappear with
// it.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	ident, ok := auth.CurrentIdentity(r)
	if !ok {
		httpjson.Msg(w, http.StatusUnauthorized, "No token, authorization denied")
		return
	}
	id, ok := projectID(w, r)
	if !ok {
		return
	}

	if err := h.Projects.Delete(r.Context(), id, ident.UserID); err != nil {
		h.writeStoreError(w, "projects: delete", err)
		return
	}

	h.Log.Info("projects: deleted",
		zap.String("project_id", id.Hex()),
		zap.String("actor_id", ident.UserID.Hex()))
	httpjson.Msg(w, http.StatusOK, "Project deleted")
}
