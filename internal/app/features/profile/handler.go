// internal/app/features/profile/handler.go
package profile

import (
	profilestore "github.com/ticketry/ticketry/internal/app/store/profiles"
	projectstore "github.com/ticketry/ticketry/internal/app/store/projects"
	userstore "github.com/ticketry/ticketry/internal/app/store/users"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler owns all profile handlers.
type Handler struct {
	DB       *mongo.Database
	Profiles *profilestore.Store
	Users    *userstore.Store
	Projects *projectstore.Store
	Log      *zap.Logger
}

// NewHandler constructs a profile Handler.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		DB:       db,
		Profiles: profilestore.New(db),
		Users:    userstore.New(db),
		Projects: projectstore.New(db),
		Log:      logger,
	}
}
