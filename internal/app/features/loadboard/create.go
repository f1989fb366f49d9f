// internal/app/features/loadboard/create.go
package loadboard

import (
	"context"
	"net/http"
	"net/url"

	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"

	"github.com/kirisuberu/connect2bulk/internal/app/system/formutil"
	"github.com/kirisuberu/connect2bulk/internal/app/system/loadnum"
	"github.com/kirisuberu/connect2bulk/internal/app/system/timeouts"
	"github.com/kirisuberu/connect2bulk/internal/app/system/trailertypes"
	"github.com/kirisuberu/connect2bulk/internal/domain/models"
)

// ServeCreateForm handles GET /loads/new.
func (h *Handler) ServeCreateForm(w http.ResponseWriter, r *http.Request) {
	data := formData{
		Load:         models.Load{Frequency: models.FrequencyOnce},
		TrailerTypes: trailertypes.All,
		Frequencies:  models.Frequencies,
	}
	formutil.SetBase(&data.Base, r, "Post a load", "/loads")
	templates.Render(w, r, "loadboard_form", data)
}

// HandleCreate handles POST /loads.
//
// The load number is generated here, not by the store, so the redirect can
// carry it for the list's reconcile step. The firm's posting counter is
// best-effort; the posting stands even if the counter bump fails.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/loads")
		return
	}

	load, msg := parseLoadForm(r)
	if msg != "" {
		h.renderForm(w, r, load, false, msg)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	load.LoadNumber = loadnum.Generate()
	created, err := h.Loads.Create(ctx, load)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "create load failed", err, "The load could not be posted. Please try again.", "/loads")
		return
	}

	if firm, ok, rerr := h.Resolver.Resolve(ctx, w, r); rerr == nil && ok {
		if err := h.Resolver.Firms.IncrementPostCounts(ctx, firm.ID, 1, 0); err != nil {
			h.Log.Warn("load post counter not bumped", zap.Error(err), zap.String("firm_id", firm.ID.Hex()))
		}
	} else if rerr != nil {
		h.Log.Warn("firm resolve failed after load create", zap.Error(rerr))
	}

	h.Log.Info("load posted", zap.String("load_number", created.LoadNumber))
	http.Redirect(w, r, "/loads?created="+url.QueryEscape(created.LoadNumber), http.StatusSeeOther)
}

func (h *Handler) renderForm(w http.ResponseWriter, r *http.Request, load models.Load, editing bool, msg string) {
	data := formData{
		Load:         load,
		TrailerTypes: trailertypes.All,
		Frequencies:  models.Frequencies,
		Editing:      editing,
	}
	title := "Post a load"
	if editing {
		title = "Edit load"
	}
	formutil.SetBase(&data.Base, r, title, "/loads")
	data.SetError(msg)
	templates.Render(w, r, "loadboard_form", data)
}
