// internal/app/features/projects/handler.go
package projects

import (
	profilestore "github.com/ticketry/ticketry/internal/app/store/profiles"
	projectstore "github.com/ticketry/ticketry/internal/app/store/projects"
	userstore "github.com/ticketry/ticketry/internal/app/store/users"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler owns all project handlers.
type Handler struct {
	Projects *projectstore.Store
	Profiles *profilestore.Store
	Users    *userstore.Store
	Log      *zap.Logger
}

// NewHandler constructs a projects Handler.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		Projects: projectstore.New(db),
		Profiles: profilestore.New(db),
		Users:    userstore.New(db),
		Log:      logger,
	}
}
