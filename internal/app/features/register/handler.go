// internal/app/features/register/handler.go
package register

import (
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	uierrors "github.com/kirisuberu/connect2bulk/internal/app/features/errors"
	"github.com/kirisuberu/connect2bulk/internal/app/store/pendingreg"
	"github.com/kirisuberu/connect2bulk/internal/app/system/identity"
	"github.com/kirisuberu/connect2bulk/internal/app/system/mailer"
)

// Handler owns the firm registration flow: the form, the pending
// registration, and the verification email.
type Handler struct {
	DB         *mongo.Database
	Log        *zap.Logger
	ErrLog     *uierrors.ErrorLogger
	Identity   identity.Provider
	Mailer     mailer.Sender
	PendingReg *pendingreg.Store
	CodeTTL    string // human-readable code lifetime for the email body
}

func NewHandler(db *mongo.Database, id identity.Provider, mail mailer.Sender, pending *pendingreg.Store, codeTTL string, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:         db,
		Log:        logger,
		ErrLog:     errLog,
		Identity:   id,
		Mailer:     mail,
		PendingReg: pending,
		CodeTTL:    codeTTL,
	}
}
