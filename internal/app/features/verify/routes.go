// internal/app/features/verify/routes.go
package verify

import (
	"github.com/go-chi/chi/v5"

	_ "github.com/kirisuberu/connect2bulk/internal/app/features/verify/views"
)

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeForm)
	r.Post("/", h.HandleSubmit)
	r.Post("/resend", h.HandleResend)
	return r
}
