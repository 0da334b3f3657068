// internal/app/features/users/register.go
package users

import (
	"errors"
	"net/http"

	userstore "github.com/ticketry/ticketry/internal/app/store/users"
	"github.com/ticketry/ticketry/internal/app/system/authutil"
	"github.com/ticketry/ticketry/internal/app/system/httpjson"
	"github.com/ticketry/ticketry/internal/app/system/inputval"
	"github.com/ticketry/ticketry/internal/domain/models"
)

// registerRequest is the POST /api/users payload.
type registerRequest struct {
	Name     string `json:"name" validate:"required" label:"Name"`
	Email    string `json:"email" validate:"required,email" label:"Email"`
	Password string `json:"password"`
}

// registerResponse returns the session token alongside the stored user
// (password hash stripped via the model's json tags).
type registerResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// Register handles POST /api/users. Creates the account, hashes the
// password, and issues a token so the client is signed in immediately.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Msg(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result := inputval.Validate(req)
	if err := authutil.ValidatePassword(req.Password); err != nil {
		result.Errors = append(result.Errors, inputval.FieldError{
			Field:   "Password",
			Message: "Please enter a password with 6 or more characters",
		})
	}
	if result.HasErrors() {
		httpjson.FieldErrors(w, result.Messages()...)
		return
	}

	hash, err := authutil.HashPassword(req.Password)
	if err != nil {
		httpjson.ServerError(w, h.Log, "register: hash password", err)
		return
	}

	user, err := h.Store.Create(r.Context(), req.Name, req.Email, hash)
	if err != nil {
		if errors.Is(err, userstore.ErrDuplicateEmail) {
			httpjson.FieldErrors(w, "User already exists")
			return
		}
		httpjson.ServerError(w, h.Log, "register: create user", err)
		return
	}

	token, err := h.Tokens.Issue(user.ID, user.Name)
	if err != nil {
		httpjson.ServerError(w, h.Log, "register: issue token", err)
		return
	}

	httpjson.Write(w, http.StatusOK, registerResponse{Token: token, User: user})
}
