// internal/app/features/loadboard/delete.go
package loadboard

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/kirisuberu/connect2bulk/internal/app/features/errors"
	"github.com/kirisuberu/connect2bulk/internal/app/system/timeouts"
)

// HandleDelete handles POST /loads/{id}/delete.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		errors.RenderNotFound(w, r, "That load posting no longer exists.", "/loads")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	deleted, err := h.Loads.Delete(ctx, id)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "delete load failed", err, "The load could not be deleted. Please try again.", "/loads")
		return
	}

	if deleted > 0 {
		if firm, ok, rerr := h.Resolver.Resolve(ctx, w, r); rerr == nil && ok {
			if err := h.Resolver.Firms.IncrementPostCounts(ctx, firm.ID, -1, 0); err != nil {
				h.Log.Warn("load post counter not decremented", zap.Error(err), zap.String("firm_id", firm.ID.Hex()))
			}
		}
		h.Log.Info("load deleted", zap.String("id", id.Hex()))
	}

	http.Redirect(w, r, "/loads", http.StatusSeeOther)
}
