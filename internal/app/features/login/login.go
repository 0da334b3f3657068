// internal/app/features/login/login.go
package login

import (
	"errors"
	"net/http"

	"github.com/ticketry/ticketry/internal/app/system/auth"
	"github.com/ticketry/ticketry/internal/app/system/authutil"
	"github.com/ticketry/ticketry/internal/app/system/httpjson"
	"github.com/ticketry/ticketry/internal/app/system/inputval"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type loginRequest struct {
	Email    string `json:"email" validate:"required,email" label:"Email"`
	Password string `json:"password" validate:"required" label:"Password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// Login handles POST /api/auth. An unknown email and a wrong password
// produce the same response, so the endpoint cannot be used to probe
// which addresses have accounts.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Msg(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if result := inputval.Validate(req); result.HasErrors() {
		httpjson.FieldErrors(w, result.Messages()...)
		return
	}

	user, err := h.Store.GetByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.Msg(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		httpjson.ServerError(w, h.Log, "login: load user", err)
		return
	}

	if !authutil.CheckPassword(req.Password, user.PasswordHash) {
		httpjson.Msg(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := h.Tokens.Issue(user.ID, user.Name)
	if err != nil {
		httpjson.ServerError(w, h.Log, "login: issue token", err)
		return
	}

	httpjson.Write(w, http.StatusOK, loginResponse{Token: token})
}

// Resolve handles GET /api/auth. Returns the caller's user document,
// loaded fresh from the store so a deleted account stops resolving
// even while its token is still within lifetime.
func (h *Handler) Resolve(w http.ResponseWriter, r *http.Request) {
	ident, ok := auth.CurrentIdentity(r)
	if !ok {
		httpjson.Msg(w, http.StatusUnauthorized, "No token, authorization denied")
		return
	}

	user, err := h.Store.GetByID(r.Context(), ident.UserID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			h.Log.Warn("login: token for missing user", zap.String("user_id", ident.UserID.Hex()))
			httpjson.Msg(w, http.StatusUnauthorized, "Invalid token")
			return
		}
		httpjson.ServerError(w, h.Log, "login: resolve user", err)
		return
	}

	httpjson.Write(w, http.StatusOK, user)
}
