// internal/app/features/loadboard/list.go
package loadboard

import (
	"context"
	"net/http"
	"time"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"

	"github.com/kirisuberu/connect2bulk/internal/app/store/loads"
	"github.com/kirisuberu/connect2bulk/internal/app/system/loadnum"
	"github.com/kirisuberu/connect2bulk/internal/app/system/optimistic"
	"github.com/kirisuberu/connect2bulk/internal/app/system/recordapi"
	"github.com/kirisuberu/connect2bulk/internal/app/system/reconcile"
	"github.com/kirisuberu/connect2bulk/internal/app/system/timeouts"
	"github.com/kirisuberu/connect2bulk/internal/app/system/viewdata"
	"github.com/kirisuberu/connect2bulk/internal/domain/models"
)

type listData struct {
	viewdata.BaseVM

	Loads []models.Load

	// PendingNumber is set when a just-created posting has not become
	// visible within the retry budget. The list renders a notice instead
	// of pretending the posting failed.
	PendingNumber string
	CreatedNumber string
}

// loadKey de-duplicates board entries: store id when assigned, load number
// otherwise.
func loadKey(l models.Load) string {
	if !l.ID.IsZero() {
		return l.ID.Hex()
	}
	return l.LoadNumber
}

// ServeList handles GET /loads.
//
// After a create redirect (?created=<number>) the handler reconciles: it
// polls for the new posting and merges it into the fetched list so the board
// shows it even when the list query predates the write.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	var fetched []models.Load
	err := recordapi.WithAuthFallback(ctx, func(ctx context.Context, mode recordapi.AuthMode) error {
		var listErr error
		fetched, listErr = h.loadsFor(mode).ListNewestFirst(ctx, ListLimit)
		return recordapi.Wrap("list loads", listErr)
	})
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list loads failed", err, "The load board could not be loaded.", "/dashboard")
		return
	}

	data := listData{BaseVM: viewdata.NewBaseVM(r, "Load board", "/dashboard")}

	if created := query.Get(r, "created"); loadnum.Valid(created) {
		rec, outcome, rerr := reconcile.AwaitVisible(ctx, h.lookupByNumber(created), reconcile.Options{})
		switch outcome {
		case reconcile.Found:
			fetched = optimistic.Merge(fetched, &rec, loadKey)
			data.CreatedNumber = created
		case reconcile.NotFound:
			data.PendingNumber = created
		case reconcile.Error:
			h.Log.Warn("load reconcile failed", zap.Error(rerr), zap.String("load_number", created))
			data.PendingNumber = created
		}
	}

	optimistic.SortNewestFirst(fetched, func(l models.Load) time.Time { return l.CreatedAt })
	data.Loads = fetched

	templates.Render(w, r, "loadboard_list", data)
}

func (h *Handler) lookupByNumber(number string) reconcile.LookupFunc[models.Load] {
	return func(ctx context.Context) (models.Load, bool, error) {
		l, err := h.Loads.GetByLoadNumber(ctx, number)
		if err == loadstore.ErrNotFound {
			return models.Load{}, false, nil
		}
		if err != nil {
			return models.Load{}, false, err
		}
		return l, true, nil
	}
}
