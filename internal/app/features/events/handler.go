// internal/app/features/events/handler.go
package events

import (
	eventstore "github.com/dalemusser/congregate/internal/app/store/events"
	"github.com/dalemusser/congregate/internal/app/system/membership"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the shared dependency container for the events feature.
type Handler struct {
	Events     *eventstore.Store
	Membership *membership.Service
	Log        *zap.Logger
}

func NewHandler(db *mongo.Database, ms *membership.Service, logger *zap.Logger) *Handler {
	return &Handler{
		Events:     eventstore.New(db),
		Membership: ms,
		Log:        logger,
	}
}
