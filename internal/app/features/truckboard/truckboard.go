// internal/app/features/truckboard/truckboard.go
package truckboard

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/kirisuberu/connect2bulk/internal/app/features/errors"
	"github.com/kirisuberu/connect2bulk/internal/app/store/trucks"
	"github.com/kirisuberu/connect2bulk/internal/app/system/formutil"
	"github.com/kirisuberu/connect2bulk/internal/app/system/htmlsanitize"
	"github.com/kirisuberu/connect2bulk/internal/app/system/inputval"
	"github.com/kirisuberu/connect2bulk/internal/app/system/loadnum"
	"github.com/kirisuberu/connect2bulk/internal/app/system/optimistic"
	"github.com/kirisuberu/connect2bulk/internal/app/system/recordapi"
	"github.com/kirisuberu/connect2bulk/internal/app/system/reconcile"
	"github.com/kirisuberu/connect2bulk/internal/app/system/timeouts"
	"github.com/kirisuberu/connect2bulk/internal/app/system/trailertypes"
	"github.com/kirisuberu/connect2bulk/internal/app/system/viewdata"
	"github.com/kirisuberu/connect2bulk/internal/domain/models"
)

type listData struct {
	viewdata.BaseVM

	Trucks        []models.Truck
	PendingNumber string
	CreatedNumber string
}

type formData struct {
	formutil.Base

	Truck        models.Truck
	TrailerTypes []string
	Editing      bool
}

func truckKey(tr models.Truck) string {
	if !tr.ID.IsZero() {
		return tr.ID.Hex()
	}
	return tr.TruckNumber
}

// ServeList handles GET /trucks.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	var fetched []models.Truck
	err := recordapi.WithAuthFallback(ctx, func(ctx context.Context, mode recordapi.AuthMode) error {
		var listErr error
		fetched, listErr = h.trucksFor(mode).ListNewestFirst(ctx, ListLimit)
		return recordapi.Wrap("list trucks", listErr)
	})
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list trucks failed", err, "The truck board could not be loaded.", "/dashboard")
		return
	}

	data := listData{BaseVM: viewdata.NewBaseVM(r, "Truck board", "/dashboard")}

	if created := query.Get(r, "created"); loadnum.ValidTruck(created) {
		rec, outcome, rerr := reconcile.AwaitVisible(ctx, h.lookupByNumber(created), reconcile.Options{})
		switch outcome {
		case reconcile.Found:
			fetched = optimistic.Merge(fetched, &rec, truckKey)
			data.CreatedNumber = created
		case reconcile.NotFound:
			data.PendingNumber = created
		case reconcile.Error:
			h.Log.Warn("truck reconcile failed", zap.Error(rerr), zap.String("truck_number", created))
			data.PendingNumber = created
		}
	}

	optimistic.SortNewestFirst(fetched, func(tr models.Truck) time.Time { return tr.CreatedAt })
	data.Trucks = fetched

	templates.Render(w, r, "truckboard_list", data)
}

func (h *Handler) lookupByNumber(number string) reconcile.LookupFunc[models.Truck] {
	return func(ctx context.Context) (models.Truck, bool, error) {
		tr, err := h.Trucks.GetByTruckNumber(ctx, number)
		if err == truckstore.ErrNotFound {
			return models.Truck{}, false, nil
		}
		if err != nil {
			return models.Truck{}, false, err
		}
		return tr, true, nil
	}
}

// ServeCreateForm handles GET /trucks/new.
func (h *Handler) ServeCreateForm(w http.ResponseWriter, r *http.Request) {
	data := formData{TrailerTypes: trailertypes.All}
	formutil.SetBase(&data.Base, r, "Post a truck", "/trucks")
	templates.Render(w, r, "truckboard_form", data)
}

// HandleCreate handles POST /trucks.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/trucks")
		return
	}

	truck, msg := parseTruckForm(r)
	if msg != "" {
		h.renderForm(w, r, truck, false, msg)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	truck.TruckNumber = loadnum.GenerateTruck()
	created, err := h.Trucks.Create(ctx, truck)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "create truck posting failed", err, "The truck could not be posted. Please try again.", "/trucks")
		return
	}

	if firm, ok, rerr := h.Resolver.Resolve(ctx, w, r); rerr == nil && ok {
		if err := h.Resolver.Firms.IncrementPostCounts(ctx, firm.ID, 0, 1); err != nil {
			h.Log.Warn("truck post counter not bumped", zap.Error(err), zap.String("firm_id", firm.ID.Hex()))
		}
	} else if rerr != nil {
		h.Log.Warn("firm resolve failed after truck create", zap.Error(rerr))
	}

	h.Log.Info("truck posted", zap.String("truck_number", created.TruckNumber))
	http.Redirect(w, r, "/trucks?created="+url.QueryEscape(created.TruckNumber), http.StatusSeeOther)
}

// ServeEditForm handles GET /trucks/{id}/edit.
func (h *Handler) ServeEditForm(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		errors.RenderNotFound(w, r, "That truck posting no longer exists.", "/trucks")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	truck, err := h.Trucks.GetByID(ctx, id)
	if err == truckstore.ErrNotFound {
		errors.RenderNotFound(w, r, "That truck posting no longer exists.", "/trucks")
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "get truck posting failed", err, "The posting could not be loaded.", "/trucks")
		return
	}

	h.renderForm(w, r, truck, true, "")
}

// HandleUpdate handles POST /trucks/{id}.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		errors.RenderNotFound(w, r, "That truck posting no longer exists.", "/trucks")
		return
	}
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/trucks")
		return
	}

	truck, msg := parseTruckForm(r)
	truck.ID = id
	if msg != "" {
		h.renderForm(w, r, truck, true, msg)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	current, err := h.Trucks.GetByID(ctx, id)
	if err == truckstore.ErrNotFound {
		errors.RenderNotFound(w, r, "That truck posting no longer exists.", "/trucks")
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "get truck posting failed", err, "The posting could not be updated. Please try again.", "/trucks")
		return
	}
	truck.TruckNumber = current.TruckNumber

	if err := h.Trucks.Update(ctx, id, truck); err != nil {
		if err == truckstore.ErrNotFound {
			errors.RenderNotFound(w, r, "That truck posting no longer exists.", "/trucks")
			return
		}
		h.ErrLog.LogServerError(w, r, "update truck posting failed", err, "The posting could not be updated. Please try again.", "/trucks")
		return
	}

	h.Log.Info("truck posting updated", zap.String("id", id.Hex()))
	http.Redirect(w, r, "/trucks", http.StatusSeeOther)
}

// HandleDelete handles POST /trucks/{id}/delete.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		errors.RenderNotFound(w, r, "That truck posting no longer exists.", "/trucks")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	deleted, err := h.Trucks.Delete(ctx, id)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "delete truck posting failed", err, "The posting could not be deleted. Please try again.", "/trucks")
		return
	}

	if deleted > 0 {
		if firm, ok, rerr := h.Resolver.Resolve(ctx, w, r); rerr == nil && ok {
			if err := h.Resolver.Firms.IncrementPostCounts(ctx, firm.ID, 0, -1); err != nil {
				h.Log.Warn("truck post counter not decremented", zap.Error(err), zap.String("firm_id", firm.ID.Hex()))
			}
		}
		h.Log.Info("truck posting deleted", zap.String("id", id.Hex()))
	}

	http.Redirect(w, r, "/trucks", http.StatusSeeOther)
}

// parseTruckForm extracts and validates a truck posting; like the load form,
// problems are concatenated and a non-empty message blocks the store call.
func parseTruckForm(r *http.Request) (models.Truck, string) {
	truck := models.Truck{
		AvailableDate: strings.TrimSpace(r.FormValue("available_date")),
		Origin:        strings.TrimSpace(r.FormValue("origin")),
		Destination:   strings.TrimSpace(r.FormValue("destination")),
		TrailerType:   trailertypes.Normalize(r.FormValue("trailer_type")),
		Comment:       htmlsanitize.Sanitize(r.FormValue("comment")),
	}

	var msgs []string
	if _, msg := inputval.ParseDate("Available date", truck.AvailableDate); msg != "" {
		msgs = append(msgs, msg)
	}
	if truck.Origin == "" {
		msgs = append(msgs, "Origin is required.")
	}
	if !trailertypes.Valid(truck.TrailerType) {
		msgs = append(msgs, "Choose a trailer type from the list.")
	}
	return truck, strings.Join(msgs, " ")
}

func (h *Handler) renderForm(w http.ResponseWriter, r *http.Request, truck models.Truck, editing bool, msg string) {
	data := formData{
		Truck:        truck,
		TrailerTypes: trailertypes.All,
		Editing:      editing,
	}
	title := "Post a truck"
	if editing {
		title = "Edit truck posting"
	}
	formutil.SetBase(&data.Base, r, title, "/trucks")
	data.SetError(msg)
	templates.Render(w, r, "truckboard_form", data)
}
