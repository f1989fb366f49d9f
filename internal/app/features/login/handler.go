// internal/app/features/login/handler.go
package login

import (
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	uierrors "github.com/kirisuberu/connect2bulk/internal/app/features/errors"
	"github.com/kirisuberu/connect2bulk/internal/app/store/users"
	"github.com/kirisuberu/connect2bulk/internal/app/system/auth"
	"github.com/kirisuberu/connect2bulk/internal/app/system/identity"
)

// Handler owns email/password sign-in, including the forced password
// change on first sign-in with a temporary credential.
type Handler struct {
	DB         *mongo.Database
	Log        *zap.Logger
	ErrLog     *uierrors.ErrorLogger
	Identity   identity.Provider
	SessionMgr *auth.SessionManager
	Users      *userstore.Store
}

func NewHandler(db *mongo.Database, id identity.Provider, sessionMgr *auth.SessionManager, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:         db,
		Log:        logger,
		ErrLog:     errLog,
		Identity:   id,
		SessionMgr: sessionMgr,
		Users:      userstore.New(db),
	}
}
