// internal/app/features/groups/handler.go
package groups

import (
	groupstore "github.com/dalemusser/congregate/internal/app/store/groups"
	"github.com/dalemusser/congregate/internal/app/system/membership"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the shared dependency container for the groups feature.
// Reads go straight to the store; anything that touches both sides of
// a membership relationship goes through the membership service.
type Handler struct {
	Groups     *groupstore.Store
	Membership *membership.Service
	Log        *zap.Logger
}

func NewHandler(db *mongo.Database, ms *membership.Service, logger *zap.Logger) *Handler {
	return &Handler{
		Groups:     groupstore.New(db),
		Membership: ms,
		Log:        logger,
	}
}
