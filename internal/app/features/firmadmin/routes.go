// internal/app/features/firmadmin/routes.go
package firmadmin

import (
	"github.com/go-chi/chi/v5"

	"github.com/kirisuberu/connect2bulk/internal/app/system/auth"

	_ "github.com/kirisuberu/connect2bulk/internal/app/features/firmadmin/views"
)

func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Get("/", h.ServeProfile)
		pr.Post("/", h.HandleSave)
	})

	return r
}
