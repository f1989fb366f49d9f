// internal/app/bootstrap/routes.go
package bootstrap

import (
	"fmt"
	"net/http"
	"time"

	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/csrf"
	"go.uber.org/zap"

	authgooglefeature "github.com/kirisuberu/connect2bulk/internal/app/features/authgoogle"
	dashboardfeature "github.com/kirisuberu/connect2bulk/internal/app/features/dashboard"
	errorsfeature "github.com/kirisuberu/connect2bulk/internal/app/features/errors"
	firmadminfeature "github.com/kirisuberu/connect2bulk/internal/app/features/firmadmin"
	healthfeature "github.com/kirisuberu/connect2bulk/internal/app/features/health"
	homefeature "github.com/kirisuberu/connect2bulk/internal/app/features/home"
	loadboardfeature "github.com/kirisuberu/connect2bulk/internal/app/features/loadboard"
	loginfeature "github.com/kirisuberu/connect2bulk/internal/app/features/login"
	logoutfeature "github.com/kirisuberu/connect2bulk/internal/app/features/logout"
	profilefeature "github.com/kirisuberu/connect2bulk/internal/app/features/profile"
	registerfeature "github.com/kirisuberu/connect2bulk/internal/app/features/register"
	resetpasswordfeature "github.com/kirisuberu/connect2bulk/internal/app/features/resetpassword"
	truckboardfeature "github.com/kirisuberu/connect2bulk/internal/app/features/truckboard"
	usersfeature "github.com/kirisuberu/connect2bulk/internal/app/features/users"
	verifyfeature "github.com/kirisuberu/connect2bulk/internal/app/features/verify"
	"github.com/kirisuberu/connect2bulk/internal/app/store/emailverify"
	"github.com/kirisuberu/connect2bulk/internal/app/store/firms"
	"github.com/kirisuberu/connect2bulk/internal/app/store/oauthstate"
	"github.com/kirisuberu/connect2bulk/internal/app/store/pendingreg"
	"github.com/kirisuberu/connect2bulk/internal/app/system/auth"
	"github.com/kirisuberu/connect2bulk/internal/app/system/firmresolve"
	"github.com/kirisuberu/connect2bulk/internal/app/system/identity"
	"github.com/kirisuberu/connect2bulk/internal/app/system/mailer"
)

// BuildHandler constructs the root HTTP handler for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup,
// and Startup have completed. It builds the shared services (session
// manager, template engine, identity provider, mailer, firm resolver)
// and mounts a feature router per application area.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	db := deps.MongoDatabase
	guestDB := deps.GuestMongoDatabase
	secure := coreCfg.Env == "prod"

	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	// Initialize and boot the template engine once at startup. Dev mode
	// enables template reloading for faster iteration.
	eng := templates.New(coreCfg.Env == "dev")
	if err := eng.Boot(logger); err != nil {
		logger.Error("template engine boot failed", zap.Error(err))
		return nil, err
	}
	templates.UseEngine(eng, logger)

	errLog := errorsfeature.NewErrorLogger(logger)

	// Shared services.
	mail := mailer.New(appCfg.MailSMTPHost, appCfg.MailSMTPPort, appCfg.MailSMTPUser, appCfg.MailSMTPPass, appCfg.MailFrom, logger)
	verifyStore := emailverify.New(db, appCfg.CodeExpiry)
	idProvider := identity.NewMongoProvider(db, verifyStore, logger)
	pendingStore := pendingreg.New(db, appCfg.CodeExpiry)
	resolver := firmresolve.New(firmstore.New(db), sessionMgr)
	codeTTL := codeTTLText(appCfg.CodeExpiry)

	r := chi.NewRouter()

	// Every form in the app carries the gorilla/csrf token.
	r.Use(csrf.Protect([]byte(appCfg.SessionKey), csrf.Secure(secure), csrf.Path("/")))

	// Global auth middleware: loads SessionUser into context if signed in.
	r.Use(sessionMgr.LoadSessionUser)

	// Health check endpoint for load balancers and orchestrators.
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Static assets with pre-compressed file support (gzip/brotli).
	r.Handle("/static/*", fileserver.Handler("/static", "public"))

	// Public pages.
	homeHandler := homefeature.NewHandler(logger)
	r.Mount("/", homefeature.Routes(homeHandler))

	// Registration and email verification.
	registerHandler := registerfeature.NewHandler(db, idProvider, mail, pendingStore, codeTTL, errLog, logger)
	r.Mount("/register", registerfeature.Routes(registerHandler))

	verifyHandler := verifyfeature.NewHandler(db, idProvider, mail, pendingStore, codeTTL, "/login", errLog, logger)
	r.Mount("/verify", verifyfeature.Routes(verifyHandler))

	// Authentication.
	loginHandler := loginfeature.NewHandler(db, idProvider, sessionMgr, errLog, logger)
	r.Mount("/login", loginfeature.Routes(loginHandler))

	logoutHandler := logoutfeature.NewHandler(sessionMgr, logger)
	r.Mount("/logout", logoutfeature.Routes(logoutHandler, sessionMgr))

	resetHandler := resetpasswordfeature.NewHandler(idProvider, mail, codeTTL, errLog, logger)
	r.Mount("/reset-password", resetpasswordfeature.Routes(resetHandler))

	googleHandler := authgooglefeature.NewHandler(db, sessionMgr, oauthstate.New(db),
		appCfg.GoogleClientID, appCfg.GoogleClientSecret, appCfg.BaseURL, logger)
	r.Mount("/auth/google", authgooglefeature.Routes(googleHandler))

	// Error pages.
	errorsHandler := errorsfeature.NewHandler()
	r.Get("/forbidden", errorsHandler.Forbidden)
	r.Get("/unauthorized", errorsHandler.Unauthorized)

	// Signed-in areas.
	dashboardHandler := dashboardfeature.NewHandler(resolver, logger)
	r.Mount("/dashboard", dashboardfeature.Routes(dashboardHandler, sessionMgr))

	loadboardHandler := loadboardfeature.NewHandler(db, guestDB, resolver, errLog, logger)
	r.Mount("/loads", loadboardfeature.Routes(loadboardHandler, sessionMgr))

	truckboardHandler := truckboardfeature.NewHandler(db, guestDB, resolver, errLog, logger)
	r.Mount("/trucks", truckboardfeature.Routes(truckboardHandler, sessionMgr))

	firmadminHandler := firmadminfeature.NewHandler(db, resolver, errLog, logger)
	r.Mount("/admin", firmadminfeature.Routes(firmadminHandler, sessionMgr))

	usersHandler := usersfeature.NewHandler(db, idProvider, mail, "/login", errLog, logger)
	r.Mount("/users", usersfeature.Routes(usersHandler, sessionMgr))

	profileHandler := profilefeature.NewHandler(db, idProvider, sessionMgr, errLog, logger)
	r.Mount("/profile", profilefeature.Routes(profileHandler, sessionMgr))

	return r, nil
}

// codeTTLText renders the code lifetime for email bodies, e.g. "10 minutes".
func codeTTLText(d time.Duration) string {
	if d >= time.Hour && d%time.Hour == 0 {
		h := int(d / time.Hour)
		if h == 1 {
			return "1 hour"
		}
		return fmt.Sprintf("%d hours", h)
	}
	m := int(d / time.Minute)
	if m <= 1 {
		return "1 minute"
	}
	return fmt.Sprintf("%d minutes", m)
}
