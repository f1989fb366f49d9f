// internal/app/features/loadboard/edit.go
package loadboard

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/kirisuberu/connect2bulk/internal/app/features/errors"
	"github.com/kirisuberu/connect2bulk/internal/app/store/loads"
	"github.com/kirisuberu/connect2bulk/internal/app/system/timeouts"
)

// ServeEditForm handles GET /loads/{id}/edit.
func (h *Handler) ServeEditForm(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		errors.RenderNotFound(w, r, "That load posting no longer exists.", "/loads")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	load, err := h.Loads.GetByID(ctx, id)
	if err == loadstore.ErrNotFound {
		errors.RenderNotFound(w, r, "That load posting no longer exists.", "/loads")
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "get load failed", err, "The load could not be loaded.", "/loads")
		return
	}

	h.renderForm(w, r, load, true, "")
}

// HandleUpdate handles POST /loads/{id}. The load number never changes.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		errors.RenderNotFound(w, r, "That load posting no longer exists.", "/loads")
		return
	}
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/loads")
		return
	}

	load, msg := parseLoadForm(r)
	load.ID = id
	if msg != "" {
		h.renderForm(w, r, load, true, msg)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Loads.Update(ctx, id, load); err != nil {
		if err == loadstore.ErrNotFound {
			errors.RenderNotFound(w, r, "That load posting no longer exists.", "/loads")
			return
		}
		h.ErrLog.LogServerError(w, r, "update load failed", err, "The load could not be updated. Please try again.", "/loads")
		return
	}

	h.Log.Info("load updated", zap.String("id", id.Hex()))
	http.Redirect(w, r, "/loads", http.StatusSeeOther)
}
