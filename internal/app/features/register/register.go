// internal/app/features/register/register.go
package register

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"

	"github.com/kirisuberu/connect2bulk/internal/app/system/formutil"
	"github.com/kirisuberu/connect2bulk/internal/app/system/identity"
	"github.com/kirisuberu/connect2bulk/internal/app/system/inputval"
	"github.com/kirisuberu/connect2bulk/internal/app/system/mailer"
	"github.com/kirisuberu/connect2bulk/internal/app/system/normalize"
	"github.com/kirisuberu/connect2bulk/internal/app/system/timeouts"
	"github.com/kirisuberu/connect2bulk/internal/app/system/viewdata"
	"github.com/kirisuberu/connect2bulk/internal/domain/models"
)

// registerData is the view model for the registration form.
type registerData struct {
	formutil.Base

	FirmName  string
	FirmType  string
	FirstName string
	LastName  string
	Email     string
	Street    string
	City      string
	State     string
	Zip       string
	Phone     string

	FirmTypes []string
}

// ServeForm handles GET /register.
func (h *Handler) ServeForm(w http.ResponseWriter, r *http.Request) {
	data := registerData{FirmTypes: models.FirmTypes}
	formutil.SetBase(&data.Base, r, "Register your firm", "/")
	templates.Render(w, r, "register", data)
}

// HandleSubmit handles POST /register.
//
// A valid submission parks the firm payload as a pending registration,
// creates the identity account with a generated temporary password, and
// emails the verification code. Nothing is written to the firms collection
// until the email is verified.
func (h *Handler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/register")
		return
	}

	data := registerData{
		FirmName:  strings.TrimSpace(r.FormValue("firm_name")),
		FirmType:  normalize.FirmType(r.FormValue("firm_type")),
		FirstName: normalize.Name(r.FormValue("first_name")),
		LastName:  normalize.Name(r.FormValue("last_name")),
		Email:     strings.TrimSpace(r.FormValue("email")),
		Street:    strings.TrimSpace(r.FormValue("street")),
		City:      strings.TrimSpace(r.FormValue("city")),
		State:     strings.TrimSpace(r.FormValue("state")),
		Zip:       strings.TrimSpace(r.FormValue("zip")),
		Phone:     strings.TrimSpace(r.FormValue("phone")),
		FirmTypes: models.FirmTypes,
	}

	if msg := validateRegistration(&data); msg != "" {
		h.renderFormWithError(w, r, data, msg)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	emailCI := normalize.Email(data.Email)
	tempPassword := identity.GenerateTempPassword()

	code, err := h.Identity.CreateAccount(ctx, data.Email, tempPassword, true, map[string]string{
		"given_name":  data.FirstName,
		"family_name": data.LastName,
	})
	if err == identity.ErrUserExists {
		h.renderFormWithError(w, r, data, "An account with this email already exists. Try signing in instead.")
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "create account failed", err, "Registration failed. Please try again.", "/register")
		return
	}

	_, err = h.PendingReg.Put(ctx, models.PendingRegistration{
		EmailCI:      emailCI,
		TempPassword: tempPassword,
		Firm: models.Firm{
			FirmName:               data.FirmName,
			FirmType:               data.FirmType,
			AdministratorEmail:     data.Email,
			AdministratorFirstName: data.FirstName,
			AdministratorLastName:  data.LastName,
			Street:                 data.Street,
			City:                   data.City,
			State:                  data.State,
			Zip:                    data.Zip,
			Phone:                  data.Phone,
		},
	})
	if err != nil {
		h.ErrLog.LogServerError(w, r, "store pending registration failed", err, "Registration failed. Please try again.", "/register")
		return
	}

	msg := mailer.BuildVerificationEmail(mailer.VerificationEmailData{
		SiteName:  viewdata.SiteName(),
		Code:      code,
		ExpiresIn: h.CodeTTL,
	})
	msg.To = data.Email
	if err := h.Mailer.Send(msg); err != nil {
		h.Log.Error("failed to send verification email", zap.Error(err), zap.String("email", emailCI))
		h.renderFormWithError(w, r, data, "Failed to send the verification email. Please try again.")
		return
	}

	h.Log.Info("registration submitted", zap.String("email", emailCI), zap.String("firm", data.FirmName))
	http.Redirect(w, r, "/verify?email="+url.QueryEscape(data.Email), http.StatusSeeOther)
}

// validateRegistration checks the submitted fields; messages are
// concatenated so the user sees everything wrong at once.
func validateRegistration(d *registerData) string {
	var msgs []string
	if d.FirmName == "" {
		msgs = append(msgs, "Firm name is required.")
	}
	if !models.ValidFirmType(d.FirmType) {
		msgs = append(msgs, "Choose a firm type.")
	}
	if d.FirstName == "" || d.LastName == "" {
		msgs = append(msgs, "Administrator first and last name are required.")
	}
	if !inputval.IsValidEmail(d.Email) {
		msgs = append(msgs, "Enter a valid email address.")
	}
	if d.State == "" {
		msgs = append(msgs, "State is required.")
	}
	if !inputval.IsValidZip(d.Zip) {
		msgs = append(msgs, "Enter a 5 or 9 digit zip code.")
	}
	return strings.Join(msgs, " ")
}

func (h *Handler) renderFormWithError(w http.ResponseWriter, r *http.Request, data registerData, msg string) {
	formutil.SetBase(&data.Base, r, "Register your firm", "/")
	data.SetError(msg)
	templates.Render(w, r, "register", data)
}
