// internal/app/features/resetpassword/resetpassword.go
package resetpassword

import (
	"context"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"

	"github.com/kirisuberu/connect2bulk/internal/app/system/formutil"
	"github.com/kirisuberu/connect2bulk/internal/app/system/identity"
	"github.com/kirisuberu/connect2bulk/internal/app/system/inputval"
	"github.com/kirisuberu/connect2bulk/internal/app/system/mailer"
	"github.com/kirisuberu/connect2bulk/internal/app/system/normalize"
	"github.com/kirisuberu/connect2bulk/internal/app/system/timeouts"
	"github.com/kirisuberu/connect2bulk/internal/app/system/viewdata"
)

// MinPasswordLength is the shortest accepted permanent password.
const MinPasswordLength = 8

var codeRe = regexp.MustCompile(`^\d{6}$`)

type requestData struct {
	formutil.Base

	Email string
}

type confirmData struct {
	formutil.Base

	Email string
	Sent  bool
}

// ServeRequestForm handles GET /reset-password.
func (h *Handler) ServeRequestForm(w http.ResponseWriter, r *http.Request) {
	data := requestData{Email: strings.TrimSpace(query.Get(r, "email"))}
	formutil.SetBase(&data.Base, r, "Reset your password", "/login")
	templates.Render(w, r, "resetpassword_request", data)
}

// HandleRequest handles POST /reset-password.
//
// The response is the same whether or not an account exists for the email,
// so the form cannot be used to probe for registered addresses.
func (h *Handler) HandleRequest(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/reset-password")
		return
	}

	data := requestData{Email: strings.TrimSpace(r.FormValue("email"))}
	if !inputval.IsValidEmail(data.Email) {
		formutil.SetBase(&data.Base, r, "Reset your password", "/login")
		data.SetError("Enter a valid email address.")
		templates.Render(w, r, "resetpassword_request", data)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	code, err := h.Identity.RequestPasswordReset(ctx, data.Email)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "request password reset failed", err, "The reset could not be started. Please try again.", "/reset-password")
		return
	}
	if code != "" {
		msg := mailer.BuildResetCodeEmail(mailer.ResetCodeEmailData{
			SiteName:  viewdata.SiteName(),
			Code:      code,
			ExpiresIn: h.CodeTTL,
		})
		msg.To = data.Email
		if err := h.Mailer.Send(msg); err != nil {
			h.Log.Error("failed to send reset code email", zap.Error(err), zap.String("email", normalize.Email(data.Email)))
		}
	}

	http.Redirect(w, r, "/reset-password/confirm?sent=1&email="+url.QueryEscape(data.Email), http.StatusSeeOther)
}

// ServeConfirmForm handles GET /reset-password/confirm.
func (h *Handler) ServeConfirmForm(w http.ResponseWriter, r *http.Request) {
	data := confirmData{
		Email: strings.TrimSpace(query.Get(r, "email")),
		Sent:  query.Get(r, "sent") == "1",
	}
	formutil.SetBase(&data.Base, r, "Enter your reset code", "/reset-password")
	templates.Render(w, r, "resetpassword_confirm", data)
}

// HandleConfirm handles POST /reset-password/confirm.
func (h *Handler) HandleConfirm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/reset-password")
		return
	}

	data := confirmData{Email: strings.TrimSpace(r.FormValue("email"))}
	code := strings.TrimSpace(r.FormValue("code"))
	newPassword := r.FormValue("new_password")
	confirm := r.FormValue("confirm_password")

	switch {
	case !inputval.IsValidEmail(data.Email):
		h.renderConfirmWithError(w, r, data, "Enter the email address for your account.")
		return
	case !codeRe.MatchString(code):
		h.renderConfirmWithError(w, r, data, "Enter the 6-digit code from the email.")
		return
	case len(newPassword) < MinPasswordLength:
		h.renderConfirmWithError(w, r, data, "The new password must be at least 8 characters.")
		return
	case newPassword != confirm:
		h.renderConfirmWithError(w, r, data, "The passwords do not match.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Identity.ConfirmPasswordReset(ctx, data.Email, code, newPassword); err != nil {
		switch err {
		case identity.ErrNotAuthorized:
			h.renderConfirmWithError(w, r, data, "That code is incorrect or has expired. Request a new one.")
		case identity.ErrUserNotFound:
			h.renderConfirmWithError(w, r, data, "That code is incorrect or has expired. Request a new one.")
		default:
			h.ErrLog.LogServerError(w, r, "confirm password reset failed", err, "The reset could not be completed. Please try again.", "/reset-password")
		}
		return
	}

	h.Log.Info("password reset completed", zap.String("email", normalize.Email(data.Email)))
	http.Redirect(w, r, "/login?reset=1&email="+url.QueryEscape(data.Email), http.StatusSeeOther)
}

func (h *Handler) renderConfirmWithError(w http.ResponseWriter, r *http.Request, data confirmData, msg string) {
	formutil.SetBase(&data.Base, r, "Enter your reset code", "/reset-password")
	data.SetError(msg)
	templates.Render(w, r, "resetpassword_confirm", data)
}
