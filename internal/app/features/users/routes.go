// internal/app/features/users/routes.go
package users

import (
	"github.com/go-chi/chi/v5"

	"github.com/kirisuberu/connect2bulk/internal/app/system/auth"
	"github.com/kirisuberu/connect2bulk/internal/domain/models"

	_ "github.com/kirisuberu/connect2bulk/internal/app/features/users/views"
)

func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Use(sm.RequireRole(models.RoleAdmin))
		pr.Get("/", h.ServeList)
		pr.Get("/invite", h.ServeInviteForm)
		pr.Post("/invite", h.HandleInvite)
		pr.Get("/{id}/edit", h.ServeEditForm)
		pr.Post("/{id}", h.HandleUpdate)
		pr.Post("/{id}/delete", h.HandleDelete)
	})

	return r
}
