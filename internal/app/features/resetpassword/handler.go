// internal/app/features/resetpassword/handler.go
package resetpassword

import (
	"go.uber.org/zap"

	uierrors "github.com/kirisuberu/connect2bulk/internal/app/features/errors"
	"github.com/kirisuberu/connect2bulk/internal/app/system/identity"
	"github.com/kirisuberu/connect2bulk/internal/app/system/mailer"
)

// Handler owns the forgot-password flow: requesting a reset code and
// confirming it with a new password.
type Handler struct {
	Log      *zap.Logger
	ErrLog   *uierrors.ErrorLogger
	Identity identity.Provider
	Mailer   mailer.Sender
	CodeTTL  string
}

func NewHandler(id identity.Provider, mail mailer.Sender, codeTTL string, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Log:      logger,
		ErrLog:   errLog,
		Identity: id,
		Mailer:   mail,
		CodeTTL:  codeTTL,
	}
}
