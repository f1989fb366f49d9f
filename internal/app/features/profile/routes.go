// internal/app/features/profile/routes.go
package profile

import (
	"github.com/go-chi/chi/v5"

	"github.com/kirisuberu/connect2bulk/internal/app/system/auth"

	_ "github.com/kirisuberu/connect2bulk/internal/app/features/profile/views"
)

func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Get("/", h.ServeProfile)
		pr.Post("/", h.HandleUpdate)
		pr.Post("/password", h.HandlePasswordChange)
	})

	return r
}
