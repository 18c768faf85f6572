// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// WAFFLE's CoreConfig handles framework-level settings (ports, TLS,
// logging level, CORS, body limits). AppConfig is everything specific
// to this application: connection strings, signing secrets, external
// service credentials.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string
	MongoDatabase    string
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// Bearer-token configuration
	TokenSecret string        // HS256 signing secret (must be strong in production)
	TokenExpiry time.Duration // lifetime of issued tokens

	// Attachment storage (S3)
	StorageS3Region    string
	StorageS3Bucket    string
	StorageS3AccessKey string
	StorageS3SecretKey string
	UploadURLExpiry    time.Duration // presigned URL lifetime

	// Payment provider
	StripeSecretKey string

	// Livestream provider
	TwitchClientID     string
	TwitchClientSecret string

	// Email/SMTP configuration
	MailSMTPHost string
	MailSMTPPort int
	MailSMTPUser string
	MailSMTPPass string
	MailFrom     string
	MailFromName string
	ContactTo    string // recipient of contact-form messages
}
