// internal/app/features/users/handler.go
package users

import (
	userstore "github.com/dalemusser/congregate/internal/app/store/users"
	"github.com/dalemusser/congregate/internal/app/system/auth"
	"github.com/dalemusser/congregate/internal/app/system/membership"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the shared dependency container for the users feature.
type Handler struct {
	Users      *userstore.Store
	Membership *membership.Service
	Tokens     *auth.TokenManager
	Log        *zap.Logger
}

// NewHandler constructs a users Handler. It is called from the
// bootstrap BuildHandler function, where the database, token manager,
// and logger are already initialized.
func NewHandler(db *mongo.Database, ms *membership.Service, tm *auth.TokenManager, logger *zap.Logger) *Handler {
	return &Handler{
		Users:      userstore.New(db),
		Membership: ms,
		Tokens:     tm,
		Log:        logger,
	}
}
