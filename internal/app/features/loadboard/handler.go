// internal/app/features/loadboard/handler.go
package loadboard

import (
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	uierrors "github.com/kirisuberu/connect2bulk/internal/app/features/errors"
	"github.com/kirisuberu/connect2bulk/internal/app/store/loads"
	"github.com/kirisuberu/connect2bulk/internal/app/system/firmresolve"
	"github.com/kirisuberu/connect2bulk/internal/app/system/recordapi"
)

// ListLimit caps the board at the most recent postings.
const ListLimit = 200

// Handler owns the load board: the newest-first list with optimistic
// reconciliation of fresh postings, and the create/edit/delete forms.
//
// Loads is bound to the signed-in connection; GuestLoads to the read-only
// guest connection used when the user context is denied.
type Handler struct {
	DB         *mongo.Database
	Log        *zap.Logger
	ErrLog     *uierrors.ErrorLogger
	Loads      *loadstore.Store
	GuestLoads *loadstore.Store
	Resolver   *firmresolve.Resolver
}

func NewHandler(db, guestDB *mongo.Database, resolver *firmresolve.Resolver, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:         db,
		Log:        logger,
		ErrLog:     errLog,
		Loads:      loadstore.New(db),
		GuestLoads: loadstore.New(guestDB),
		Resolver:   resolver,
	}
}

// loadsFor returns the store bound to the given authorization context.
func (h *Handler) loadsFor(mode recordapi.AuthMode) *loadstore.Store {
	if mode == recordapi.ModeGuest {
		return h.GuestLoads
	}
	return h.Loads
}
