// internal/app/features/authgoogle/handler.go
package authgoogle

import (
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/kirisuberu/connect2bulk/internal/app/store/oauthstate"
	"github.com/kirisuberu/connect2bulk/internal/app/store/users"
	"github.com/kirisuberu/connect2bulk/internal/app/system/auth"
)

// Handler handles Google OAuth sign-in. Google is a sign-in convenience
// only: the account must already exist in the user directory, created
// through firm registration or an invitation.
type Handler struct {
	DB         *mongo.Database
	Log        *zap.Logger
	SessionMgr *auth.SessionManager
	StateStore *oauthstate.Store
	Users      *userstore.Store

	ClientID     string
	ClientSecret string
	RedirectURL  string
}

func NewHandler(
	db *mongo.Database,
	sessionMgr *auth.SessionManager,
	stateStore *oauthstate.Store,
	clientID, clientSecret, baseURL string,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		DB:           db,
		Log:          logger,
		SessionMgr:   sessionMgr,
		StateStore:   stateStore,
		Users:        userstore.New(db),
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  baseURL + "/auth/google/callback",
	}
}

func (h *Handler) oauth2Config() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     h.ClientID,
		ClientSecret: h.ClientSecret,
		RedirectURL:  h.RedirectURL,
		Scopes: []string{
			"openid",
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint: google.Endpoint,
	}
}

// IsConfigured reports whether Google OAuth credentials are present.
func (h *Handler) IsConfigured() bool {
	return h.ClientID != "" && h.ClientSecret != ""
}
