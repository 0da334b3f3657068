// internal/app/features/profile/profile.go
package profile

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	profilestore "github.com/ticketry/ticketry/internal/app/store/profiles"
	"github.com/ticketry/ticketry/internal/app/system/auth"
	"github.com/ticketry/ticketry/internal/app/system/httpjson"
	"github.com/ticketry/ticketry/internal/app/system/inputval"
	"github.com/ticketry/ticketry/internal/app/system/timeouts"
	"github.com/ticketry/ticketry/internal/app/system/txn"
	"github.com/ticketry/ticketry/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// profileView is a profile joined with the owner's display name and
// the projects the owner currently belongs to. The project list is
// derived from project membership at read time, not stored on the
// profile, so it can never drift from the member lists.
type profileView struct {
	models.Profile
	Name     string              `json:"name"`
	Projects []models.ProjectRef `json:"projects"`
}

func (h *Handler) view(ctx context.Context, p models.Profile, name string) (profileView, error) {
	refs, err := h.Projects.RefsForUser(ctx, p.UserID)
	if err != nil {
		return profileView{}, err
	}
	return profileView{Profile: p, Name: name, Projects: refs}, nil
}

// upsertRequest is the POST /api/profile payload. Pointer fields
// distinguish "absent" from "set to empty": an omitted github_username
// leaves the stored value alone.
type upsertRequest struct {
	Availability   *string `json:"availability"`
	GitHubUsername *string `json:"github_username"`
}

// Upsert handles POST /api/profile. Creates the caller's profile or
// applies the provided fields to the existing one.
func (h *Handler) Upsert(w http.ResponseWriter, r *http.Request) {
	ident, ok := auth.CurrentIdentity(r)
	if !ok {
		httpjson.Msg(w, http.StatusUnauthorized, "No token, authorization denied")
		return
	}

	var req upsertRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Msg(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Availability == nil || *req.Availability == "" {
		httpjson.FieldErrors(w, "Availability is required.")
		return
	}

	p, err := h.Profiles.Upsert(r.Context(), ident.UserID, profilestore.UpsertInput{
		Availability:   req.Availability,
		GitHubUsername: req.GitHubUsername,
	})
	if err != nil {
		httpjson.ServerError(w, h.Log, "profile: upsert", err)
		return
	}

	vm, err := h.view(r.Context(), p, ident.Name)
	if err != nil {
		httpjson.ServerError(w, h.Log, "profile: load project refs", err)
		return
	}
	httpjson.Write(w, http.StatusOK, vm)
}

// Me handles GET /api/profile/me.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	ident, ok := auth.CurrentIdentity(r)
	if !ok {
		httpjson.Msg(w, http.StatusUnauthorized, "No token, authorization denied")
		return
	}

	p, err := h.Profiles.GetByUser(r.Context(), ident.UserID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.Msg(w, http.StatusBadRequest, "There is no profile for this user")
			return
		}
		httpjson.ServerError(w, h.Log, "profile: load own profile", err)
		return
	}

	vm, err := h.view(r.Context(), *p, ident.Name)
	if err != nil {
		httpjson.ServerError(w, h.Log, "profile: load project refs", err)
		return
	}
	httpjson.Write(w, http.StatusOK, vm)
}

// ByUser handles GET /api/profile/user/{user_id} (public).
func (h *Handler) ByUser(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "user_id")
	if !inputval.IsValidObjectID(raw) {
		httpjson.Msg(w, http.StatusNotFound, "Profile not found")
		return
	}
	userID, _ := primitive.ObjectIDFromHex(raw)

	p, err := h.Profiles.GetByUser(r.Context(), userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.Msg(w, http.StatusNotFound, "Profile not found")
			return
		}
		httpjson.ServerError(w, h.Log, "profile: load profile", err)
		return
	}

	user, err := h.Users.GetByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			// Profile outlived its user; treat as absent.
			httpjson.Msg(w, http.StatusNotFound, "Profile not found")
			return
		}
		httpjson.ServerError(w, h.Log, "profile: load profile owner", err)
		return
	}

	vm, err := h.view(r.Context(), *p, user.Name)
	if err != nil {
		httpjson.ServerError(w, h.Log, "profile: load project refs", err)
		return
	}
	httpjson.Write(w, http.StatusOK, vm)
}

// List handles GET /api/profile (public). Every profile joined with
// its owner's name; owners are resolved in one query.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	profiles, err := h.Profiles.ListAll(ctx)
	if err != nil {
		httpjson.ServerError(w, h.Log, "profile: list", err)
		return
	}

	ids := make([]primitive.ObjectID, 0, len(profiles))
	for _, p := range profiles {
		ids = append(ids, p.UserID)
	}
	names, err := h.Users.NamesByIDs(ctx, ids)
	if err != nil {
		httpjson.ServerError(w, h.Log, "profile: resolve owner names", err)
		return
	}

	views := make([]profileView, 0, len(profiles))
	for _, p := range profiles {
		vm, err := h.view(ctx, p, names[p.UserID])
		if err != nil {
			httpjson.ServerError(w, h.Log, "profile: load project refs", err)
			return
		}
		views = append(views, vm)
	}
	httpjson.Write(w, http.StatusOK, views)
}

// Delete handles DELETE /api/profile: removes the caller's profile and
// account together. Both deletes run in one transaction where the
// deployment supports it; otherwise they run sequentially and a
// partial failure is logged for repair.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	ident, ok := auth.CurrentIdentity(r)
	if !ok {
		httpjson.Msg(w, http.StatusUnauthorized, "No token, authorization denied")
		return
	}

	opCtx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	err := txn.WithTransaction(opCtx, h.DB.Client(), h.Log, func(ctx context.Context) error {
		if _, err := h.Profiles.DeleteForUser(ctx, ident.UserID); err != nil {
			return err
		}
		_, err := h.Users.Delete(ctx, ident.UserID)
		return err
	})
	if err != nil {
		httpjson.ServerError(w, h.Log, "profile: delete user and profile", err)
		return
	}

	h.Log.Info("profile: user deleted", zap.String("user_id", ident.UserID.Hex()))
	httpjson.Msg(w, http.StatusOK, "User deleted")
}
