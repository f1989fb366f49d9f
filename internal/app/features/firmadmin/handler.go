// internal/app/features/firmadmin/handler.go
package firmadmin

import (
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	uierrors "github.com/kirisuberu/connect2bulk/internal/app/features/errors"
	"github.com/kirisuberu/connect2bulk/internal/app/system/firmresolve"
)

// Handler owns the business-profile console: viewing and editing the
// signed-in administrator's firm record, creating it if the registration
// write never became visible.
type Handler struct {
	DB       *mongo.Database
	Log      *zap.Logger
	ErrLog   *uierrors.ErrorLogger
	Resolver *firmresolve.Resolver
}

func NewHandler(db *mongo.Database, resolver *firmresolve.Resolver, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:       db,
		Log:      logger,
		ErrLog:   errLog,
		Resolver: resolver,
	}
}
