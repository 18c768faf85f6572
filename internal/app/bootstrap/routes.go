// internal/app/bootstrap/routes.go
package bootstrap

import (
	"context"
	"net/http"

	chargefeature "github.com/dalemusser/congregate/internal/app/features/charge"
	contactfeature "github.com/dalemusser/congregate/internal/app/features/contact"
	eventsfeature "github.com/dalemusser/congregate/internal/app/features/events"
	groupsfeature "github.com/dalemusser/congregate/internal/app/features/groups"
	healthfeature "github.com/dalemusser/congregate/internal/app/features/health"
	livefeature "github.com/dalemusser/congregate/internal/app/features/live"
	songsfeature "github.com/dalemusser/congregate/internal/app/features/songs"
	usersfeature "github.com/dalemusser/congregate/internal/app/features/users"
	"github.com/dalemusser/congregate/internal/app/system/attachments"
	"github.com/dalemusser/congregate/internal/app/system/auth"
	"github.com/dalemusser/congregate/internal/app/system/livestream"
	"github.com/dalemusser/congregate/internal/app/system/mailer"
	"github.com/dalemusser/congregate/internal/app/system/membership"
	"github.com/dalemusser/congregate/internal/app/system/payments"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this
// WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup,
// and Startup have completed. It builds the shared system services
// (token manager, membership service, attachment store, mailer,
// payment and livestream clients) and mounts one feature router per
// API area.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	tokens := auth.NewTokenManager(appCfg.TokenSecret, "congregate", appCfg.TokenExpiry)
	ms := membership.NewService(deps.MongoDatabase, logger)

	var att *attachments.Store
	if appCfg.StorageS3Bucket != "" {
		var err error
		att, err = attachments.New(context.Background(),
			appCfg.StorageS3Region,
			appCfg.StorageS3AccessKey,
			appCfg.StorageS3SecretKey,
			appCfg.StorageS3Bucket,
			appCfg.UploadURLExpiry)
		if err != nil {
			logger.Error("attachment storage init failed", zap.Error(err))
			return nil, err
		}
	} else {
		logger.Warn("attachment storage not configured; attachment endpoints will refuse requests")
	}

	mail := mailer.New(
		appCfg.MailSMTPHost, appCfg.MailSMTPPort,
		appCfg.MailSMTPUser, appCfg.MailSMTPPass,
		appCfg.MailFrom, appCfg.MailFromName,
		logger)

	stripe := payments.NewClient(appCfg.StripeSecretKey, logger)
	twitch := livestream.NewClient(appCfg.TwitchClientID, appCfg.TwitchClientSecret)

	r := chi.NewRouter()

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	usersHandler := usersfeature.NewHandler(deps.MongoDatabase, ms, tokens, logger)
	r.Mount("/users", usersfeature.Routes(usersHandler))

	groupsHandler := groupsfeature.NewHandler(deps.MongoDatabase, ms, logger)
	r.Mount("/groups", groupsfeature.Routes(groupsHandler, tokens))

	eventsHandler := eventsfeature.NewHandler(deps.MongoDatabase, ms, logger)
	r.Mount("/events", eventsfeature.Routes(eventsHandler, tokens))

	songsHandler := songsfeature.NewHandler(deps.MongoDatabase, att, logger)
	r.Mount("/songs", songsfeature.Routes(songsHandler, tokens))

	contactHandler := contactfeature.NewHandler(mail, appCfg.ContactTo, logger)
	r.Mount("/contact", contactfeature.Routes(contactHandler))

	chargeHandler := chargefeature.NewHandler(stripe, logger)
	r.Mount("/charge", chargefeature.Routes(chargeHandler))

	liveHandler := livefeature.NewHandler(twitch, logger)
	r.Mount("/live", livefeature.Routes(liveHandler))

	return r, nil
}
