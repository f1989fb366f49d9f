// internal/app/features/resetpassword/routes.go
package resetpassword

import (
	"github.com/go-chi/chi/v5"

	_ "github.com/kirisuberu/connect2bulk/internal/app/features/resetpassword/views"
)

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeRequestForm)
	r.Post("/", h.HandleRequest)
	r.Get("/confirm", h.ServeConfirmForm)
	r.Post("/confirm", h.HandleConfirm)
	return r
}
