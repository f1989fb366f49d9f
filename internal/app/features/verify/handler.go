// internal/app/features/verify/handler.go
package verify

import (
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	uierrors "github.com/kirisuberu/connect2bulk/internal/app/features/errors"
	"github.com/kirisuberu/connect2bulk/internal/app/store/firms"
	"github.com/kirisuberu/connect2bulk/internal/app/store/pendingreg"
	"github.com/kirisuberu/connect2bulk/internal/app/store/users"
	"github.com/kirisuberu/connect2bulk/internal/app/system/identity"
	"github.com/kirisuberu/connect2bulk/internal/app/system/mailer"
)

// Handler completes a firm registration: verifying the emailed code,
// materializing the firm and its administrator, and mailing the first
// sign-in credential.
type Handler struct {
	DB         *mongo.Database
	Log        *zap.Logger
	ErrLog     *uierrors.ErrorLogger
	Identity   identity.Provider
	Mailer     mailer.Sender
	PendingReg *pendingreg.Store
	Firms      *firmstore.Store
	Users      *userstore.Store
	CodeTTL    string
	LoginURL   string
}

func NewHandler(db *mongo.Database, id identity.Provider, mail mailer.Sender, pending *pendingreg.Store, codeTTL, loginURL string, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:         db,
		Log:        logger,
		ErrLog:     errLog,
		Identity:   id,
		Mailer:     mail,
		PendingReg: pending,
		Firms:      firmstore.New(db),
		Users:      userstore.New(db),
		CodeTTL:    codeTTL,
		LoginURL:   loginURL,
	}
}
