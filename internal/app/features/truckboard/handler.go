// internal/app/features/truckboard/handler.go
package truckboard

import (
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	uierrors "github.com/kirisuberu/connect2bulk/internal/app/features/errors"
	"github.com/kirisuberu/connect2bulk/internal/app/store/trucks"
	"github.com/kirisuberu/connect2bulk/internal/app/system/firmresolve"
	"github.com/kirisuberu/connect2bulk/internal/app/system/recordapi"
)

// ListLimit caps the board at the most recent postings.
const ListLimit = 200

// Handler owns the truck board. It mirrors the load board: newest-first
// list with optimistic reconciliation, plus create/edit/delete.
//
// Trucks is bound to the signed-in connection; GuestTrucks to the
// read-only guest connection used when the user context is denied.
type Handler struct {
	DB          *mongo.Database
	Log         *zap.Logger
	ErrLog      *uierrors.ErrorLogger
	Trucks      *truckstore.Store
	GuestTrucks *truckstore.Store
	Resolver    *firmresolve.Resolver
}

func NewHandler(db, guestDB *mongo.Database, resolver *firmresolve.Resolver, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:          db,
		Log:         logger,
		ErrLog:      errLog,
		Trucks:      truckstore.New(db),
		GuestTrucks: truckstore.New(guestDB),
		Resolver:    resolver,
	}
}

// trucksFor returns the store bound to the given authorization context.
func (h *Handler) trucksFor(mode recordapi.AuthMode) *truckstore.Store {
	if mode == recordapi.ModeGuest {
		return h.GuestTrucks
	}
	return h.Trucks
}
