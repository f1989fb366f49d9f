// internal/app/features/users/handler.go
package users

import (
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	uierrors "github.com/kirisuberu/connect2bulk/internal/app/features/errors"
	"github.com/kirisuberu/connect2bulk/internal/app/store/users"
	"github.com/kirisuberu/connect2bulk/internal/app/system/identity"
	"github.com/kirisuberu/connect2bulk/internal/app/system/mailer"
)

// Handler owns the user directory: listing, inviting with a temporary
// credential, role changes, and removal. The routes are Admin-only.
type Handler struct {
	DB       *mongo.Database
	Log      *zap.Logger
	ErrLog   *uierrors.ErrorLogger
	Identity identity.Provider
	Mailer   mailer.Sender
	Users    *userstore.Store
	LoginURL string
}

func NewHandler(db *mongo.Database, id identity.Provider, mail mailer.Sender, loginURL string, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:       db,
		Log:      logger,
		ErrLog:   errLog,
		Identity: id,
		Mailer:   mail,
		Users:    userstore.New(db),
		LoginURL: loginURL,
	}
}
