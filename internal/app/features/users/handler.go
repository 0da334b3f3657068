// internal/app/features/users/handler.go
package users

import (
	userstore "github.com/ticketry/ticketry/internal/app/store/users"
	"github.com/ticketry/ticketry/internal/app/system/auth"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler owns the registration handlers.
type Handler struct {
	Store  *userstore.Store
	Tokens *auth.TokenManager
	Log    *zap.Logger
}

// NewHandler constructs a users Handler.
func NewHandler(db *mongo.Database, tokens *auth.TokenManager, logger *zap.Logger) *Handler {
	return &Handler{
		Store:  userstore.New(db),
		Tokens: tokens,
		Log:    logger,
	}
}
