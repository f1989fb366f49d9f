// internal/app/features/dashboard/handler.go
package dashboard

import (
	"context"
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"

	"github.com/kirisuberu/connect2bulk/internal/app/system/firmresolve"
	"github.com/kirisuberu/connect2bulk/internal/app/system/timeouts"
	"github.com/kirisuberu/connect2bulk/internal/app/system/viewdata"
)

// Handler renders the signed-in landing page: the tab shell over the load
// board, truck board, firm admin, user directory, and profile.
type Handler struct {
	Log      *zap.Logger
	Resolver *firmresolve.Resolver
}

func NewHandler(resolver *firmresolve.Resolver, logger *zap.Logger) *Handler {
	return &Handler{Log: logger, Resolver: resolver}
}

type dashboardData struct {
	viewdata.BaseVM

	FirmName   string
	FirmType   string
	LoadPosts  int
	TruckPosts int
	HasFirm    bool
	IsAdmin    bool
}

// ServeDashboard handles GET /dashboard.
func (h *Handler) ServeDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	data := dashboardData{BaseVM: viewdata.NewBaseVM(r, "Dashboard", "/")}
	data.IsAdmin = data.Role == "Admin"

	firm, ok, err := h.Resolver.Resolve(ctx, w, r)
	if err != nil {
		// The dashboard still renders without the firm card.
		h.Log.Warn("firm resolve failed on dashboard", zap.Error(err))
	}
	if ok {
		data.HasFirm = true
		data.FirmName = firm.FirmName
		data.FirmType = firm.FirmType
		data.LoadPosts = firm.LoadPosts
		data.TruckPosts = firm.TruckPosts
	}

	templates.Render(w, r, "dashboard", data)
}
