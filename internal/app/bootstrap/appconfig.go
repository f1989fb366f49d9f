// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// WAFFLE's CoreConfig handles framework-level settings (ports, TLS,
// logging, CORS). AppConfig is everything specific to Connect2Bulk:
// the MongoDB connection, session cookies, SMTP for verification and
// invitation email, and the Google OAuth client.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string
	MongoDatabase    string
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// MongoGuestURI is an optional second connection with read-only
	// credentials. The public boards fall back to it when the signed-in
	// context is denied; blank reuses the primary connection.
	MongoGuestURI string

	// Session management configuration
	SessionKey    string // secret key for signing session cookies
	SessionName   string // cookie name
	SessionDomain string // cookie domain (blank means current host)

	// Email/SMTP configuration
	MailSMTPHost string
	MailSMTPPort int
	MailSMTPUser string
	MailSMTPPass string
	MailFrom     string

	// SiteName appears in page titles and email bodies.
	SiteName string

	// BaseURL is the externally visible origin, used for OAuth
	// callbacks and links in email.
	BaseURL string

	// CodeExpiry bounds verification and reset codes, and the pending
	// registration parked between sign-up and email confirmation.
	CodeExpiry time.Duration

	// Google OAuth configuration. Blank disables Google sign-in.
	GoogleClientID     string
	GoogleClientSecret string
}
