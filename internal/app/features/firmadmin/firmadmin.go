// internal/app/features/firmadmin/firmadmin.go
package firmadmin

import (
	"context"
	"net/http"
	"strings"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/kirisuberu/connect2bulk/internal/app/store/firms"
	"github.com/kirisuberu/connect2bulk/internal/app/system/auth"
	"github.com/kirisuberu/connect2bulk/internal/app/system/formutil"
	"github.com/kirisuberu/connect2bulk/internal/app/system/htmlsanitize"
	"github.com/kirisuberu/connect2bulk/internal/app/system/inputval"
	"github.com/kirisuberu/connect2bulk/internal/app/system/normalize"
	"github.com/kirisuberu/connect2bulk/internal/app/system/timeouts"
	"github.com/kirisuberu/connect2bulk/internal/domain/models"
)

type profileData struct {
	formutil.Base

	Firm      models.Firm
	FirmTypes []string

	// Creating means no firm record was found for the administrator and
	// the form will create one instead of updating.
	Creating bool
	Saved    bool
}

// ServeProfile handles GET /admin.
//
// The firm is resolved via the cached session id with a natural-key
// reconcile fallback. When nothing is found within the budget the form
// switches to create mode rather than showing an error; the record may
// simply never have been written.
func (h *Handler) ServeProfile(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	firm, ok, err := h.Resolver.Resolve(ctx, w, r)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "firm resolve failed", err, "Your firm record could not be loaded.", "/dashboard")
		return
	}

	data := profileData{
		Firm:      firm,
		FirmTypes: models.FirmTypes,
		Creating:  !ok,
		Saved:     query.Get(r, "saved") == "1",
	}
	if !ok {
		if u, has := auth.CurrentUser(r); has {
			data.Firm.AdministratorEmail = u.Email
		}
	}
	formutil.SetBase(&data.Base, r, "Firm admin", "/dashboard")
	templates.Render(w, r, "firmadmin", data)
}

// HandleSave handles POST /admin. An empty id creates the firm record; a
// present id updates it in full (last write wins).
func (h *Handler) HandleSave(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/admin")
		return
	}

	firm, msg := parseFirmForm(r)

	idHex := strings.TrimSpace(r.FormValue("id"))
	creating := idHex == ""

	if msg != "" {
		h.renderWithError(w, r, firm, creating, msg)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if creating {
		u, has := auth.CurrentUser(r)
		if !has {
			h.ErrLog.LogBadRequest(w, r, "firm create without session user", nil, "Your session has expired. Sign in again.", "/login")
			return
		}
		firm.AdministratorEmail = normalize.Email(u.Email)

		created, err := h.Resolver.Firms.Create(ctx, firm)
		if err != nil {
			h.ErrLog.LogServerError(w, r, "create firm failed", err, "Your firm could not be saved. Please try again.", "/admin")
			return
		}
		h.Resolver.SessionMgr.CacheFirmID(w, r, created.ID.Hex())
		h.Log.Info("firm created from admin console", zap.String("firm_id", created.ID.Hex()))
		http.Redirect(w, r, "/admin?saved=1", http.StatusSeeOther)
		return
	}

	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "bad firm id", err, "Invalid form data.", "/admin")
		return
	}
	if err := h.Resolver.Firms.Update(ctx, id, firm); err != nil {
		if err == firmstore.ErrNotFound {
			h.renderWithError(w, r, firm, true, "Your firm record no longer exists; review the details and save to recreate it.")
			return
		}
		h.ErrLog.LogServerError(w, r, "update firm failed", err, "Your firm could not be saved. Please try again.", "/admin")
		return
	}

	h.Log.Info("firm updated", zap.String("firm_id", idHex))
	http.Redirect(w, r, "/admin?saved=1", http.StatusSeeOther)
}

// parseFirmForm extracts and validates the business profile. Problems are
// concatenated; a non-empty message blocks the store call.
func parseFirmForm(r *http.Request) (models.Firm, string) {
	firm := models.Firm{
		FirmName:               strings.TrimSpace(r.FormValue("firm_name")),
		FirmType:               normalize.FirmType(r.FormValue("firm_type")),
		AdministratorFirstName: normalize.Name(r.FormValue("first_name")),
		AdministratorLastName:  normalize.Name(r.FormValue("last_name")),
		Street:                 strings.TrimSpace(r.FormValue("street")),
		City:                   strings.TrimSpace(r.FormValue("city")),
		State:                  strings.TrimSpace(r.FormValue("state")),
		Zip:                    strings.TrimSpace(r.FormValue("zip")),
		Country:                strings.TrimSpace(r.FormValue("country")),
		DOT:                    strings.TrimSpace(r.FormValue("dot")),
		MC:                     strings.TrimSpace(r.FormValue("mc")),
		EIN:                    strings.TrimSpace(r.FormValue("ein")),
		Phone:                  strings.TrimSpace(r.FormValue("phone")),
		Website:                strings.TrimSpace(r.FormValue("website")),
		InsuranceProvider:      strings.TrimSpace(r.FormValue("insurance_provider")),
		PolicyNumber:           strings.TrimSpace(r.FormValue("policy_number")),
		PolicyExpiry:           strings.TrimSpace(r.FormValue("policy_expiry")),
		W9OnFile:               r.FormValue("w9_on_file") == "on",
		BrandColor:             strings.TrimSpace(r.FormValue("brand_color")),
		Notes:                  htmlsanitize.Sanitize(r.FormValue("notes")),
	}

	var msgs []string
	if firm.FirmName == "" {
		msgs = append(msgs, "Firm name is required.")
	}
	if !models.ValidFirmType(firm.FirmType) {
		msgs = append(msgs, "Choose a firm type.")
	}
	if firm.State == "" {
		msgs = append(msgs, "State is required.")
	}
	if !inputval.IsValidZip(firm.Zip) {
		msgs = append(msgs, "Enter a 5 or 9 digit zip code.")
	}
	if firm.PolicyExpiry != "" {
		if _, msg := inputval.ParseDate("Policy expiry", firm.PolicyExpiry); msg != "" {
			msgs = append(msgs, msg)
		}
	}
	return firm, strings.Join(msgs, " ")
}

func (h *Handler) renderWithError(w http.ResponseWriter, r *http.Request, firm models.Firm, creating bool, msg string) {
	data := profileData{Firm: firm, FirmTypes: models.FirmTypes, Creating: creating}
	formutil.SetBase(&data.Base, r, "Firm admin", "/dashboard")
	data.SetError(msg)
	templates.Render(w, r, "firmadmin", data)
}
