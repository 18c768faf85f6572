// internal/app/features/songs/handler.go
package songs

import (
	songstore "github.com/dalemusser/congregate/internal/app/store/songs"
	"github.com/dalemusser/congregate/internal/app/system/attachments"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler bundles the dependencies the songs feature needs.
type Handler struct {
	Songs       *songstore.Store
	Attachments *attachments.Store
	Log         *zap.Logger
}

func NewHandler(db *mongo.Database, att *attachments.Store, logger *zap.Logger) *Handler {
	return &Handler{
		Songs:       songstore.New(db),
		Attachments: att,
		Log:         logger,
	}
}
