// internal/app/features/profile/handler.go
package profile

import (
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	uierrors "github.com/kirisuberu/connect2bulk/internal/app/features/errors"
	"github.com/kirisuberu/connect2bulk/internal/app/store/users"
	"github.com/kirisuberu/connect2bulk/internal/app/system/auth"
	"github.com/kirisuberu/connect2bulk/internal/app/system/identity"
)

// Handler owns the signed-in user's own account: name and phone attributes
// on the identity account (mirrored to the directory entry) and password
// changes.
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
