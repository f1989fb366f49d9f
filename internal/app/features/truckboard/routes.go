// internal/app/features/truckboard/routes.go
package truckboard

import (
	"github.com/go-chi/chi/v5"

	"github.com/kirisuberu/connect2bulk/internal/app/system/auth"

	_ "github.com/kirisuberu/connect2bulk/internal/app/features/truckboard/views"
)

func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Get("/", h.ServeList)
		pr.Get("/new", h.ServeCreateForm)
		pr.Post("/", h.HandleCreate)
		pr.Get("/{id}/edit", h.ServeEditForm)
		pr.Post("/{id}", h.HandleUpdate)
		pr.Post("/{id}/delete", h.HandleDelete)
	})

	return r
}
