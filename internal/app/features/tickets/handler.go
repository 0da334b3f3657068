// internal/app/features/tickets/handler.go
package tickets

import (
	projectstore "github.com/ticketry/ticketry/internal/app/store/projects"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler owns the ticket and comment handlers. Tickets live inside
// the project aggregate, so this works against the project store.
type Handler struct {
	Projects *projectstore.Store
	Log      *zap.Logger
}

// NewHandler constructs a tickets Handler.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		Projects: projectstore.New(db),
		Log:      logger,
	}
}
