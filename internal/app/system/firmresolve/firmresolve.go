// Package firmresolve answers "which Firm is mine" for the signed-in user.
//
// The session caches the firm id once known; the fallback is a bounded
// natural-key reconcile against the administrator email, normalized case
// first and raw case second, to cover both fresh registrations whose record
// is not yet visible and older records stored with mixed-case email.
package firmresolve

import (
	"context"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/kirisuberu/connect2bulk/internal/app/store/firms"
	"github.com/kirisuberu/connect2bulk/internal/app/system/auth"
	"github.com/kirisuberu/connect2bulk/internal/app/system/normalize"
	"github.com/kirisuberu/connect2bulk/internal/app/system/reconcile"
	"github.com/kirisuberu/connect2bulk/internal/domain/models"
)

// Resolver locates the signed-in user's firm.
type Resolver struct {
	Firms      *firmstore.Store
	SessionMgr *auth.SessionManager

	// ReconcileOpts bounds the natural-key retry; zero values take the
	// reconcile defaults (3 attempts, 350ms apart).
	ReconcileOpts reconcile.Options
}

func New(firms *firmstore.Store, sm *auth.SessionManager) *Resolver {
	return &Resolver{Firms: firms, SessionMgr: sm}
}

// Resolve returns the user's firm. ok is false when no firm could be found
// within the retry budget; that is a degraded state, not an error. On a
// natural-key hit the firm id is cached in the session for next time.
func (rv *Resolver) Resolve(ctx context.Context, w http.ResponseWriter, r *http.Request) (models.Firm, bool, error) {
	if hex := rv.SessionMgr.CachedFirmID(r); hex != "" {
		if id, err := primitive.ObjectIDFromHex(hex); err == nil {
			firm, err := rv.Firms.GetByID(ctx, id)
			if err == nil {
				return firm, true, nil
			}
			if err != firmstore.ErrNotFound {
				return models.Firm{}, false, err
			}
			// Cached id points at a deleted firm; fall through to the
			// natural-key path.
		}
	}

	u, ok := auth.CurrentUser(r)
	if !ok || u.Email == "" {
		return models.Firm{}, false, nil
	}
	emailCI := normalize.Email(u.Email)

	lookup := reconcile.FirstOf(
		rv.byEmail(func(ctx context.Context) (models.Firm, error) {
			return rv.Firms.FindByAdminEmailCI(ctx, emailCI)
		}),
		rv.byEmail(func(ctx context.Context) (models.Firm, error) {
			return rv.Firms.FindByAdminEmailRaw(ctx, u.Email)
		}),
	)

	firm, outcome, err := reconcile.AwaitVisible(ctx, lookup, rv.ReconcileOpts)
	switch outcome {
	case reconcile.Found:
		rv.SessionMgr.CacheFirmID(w, r, firm.ID.Hex())
		return firm, true, nil
	case reconcile.Error:
		return models.Firm{}, false, err
	}
	return models.Firm{}, false, nil
}

func (rv *Resolver) byEmail(find func(ctx context.Context) (models.Firm, error)) reconcile.LookupFunc[models.Firm] {
	return func(ctx context.Context) (models.Firm, bool, error) {
		firm, err := find(ctx)
		if err == firmstore.ErrNotFound {
			return models.Firm{}, false, nil
		}
		if err != nil {
			return models.Firm{}, false, err
		}
		return firm, true, nil
	}
}
