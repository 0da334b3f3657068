// internal/app/features/login/handler.go
package login

import (
	userstore "github.com/ticketry/ticketry/internal/app/store/users"
	"github.com/ticketry/ticketry/internal/app/system/auth"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler owns the credential and token handlers.
type Handler struct {
	Store  *userstore.Store
	Tokens *auth.TokenManager
	Log    *zap.Logger
}

// NewHandler constructs a login Handler.
func NewHandler(db *mongo.Database, tokens *auth.TokenManager, logger *zap.Logger) *Handler {
	return &Handler{
		Store:  userstore.New(db),
		Tokens: tokens,
		Log:    logger,
	}
}
