// internal/app/features/login/routes.go
package login

import (
	"github.com/go-chi/chi/v5"

	_ "github.com/kirisuberu/connect2bulk/internal/app/features/login/views"
)

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeForm)
	r.Post("/", h.HandleSubmit)
	r.Post("/new-password", h.HandleNewPassword)
	return r
}
