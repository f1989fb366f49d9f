// internal/app/features/verify/verify.go
package verify

import (
	"context"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"

	"github.com/kirisuberu/connect2bulk/internal/app/store/pendingreg"
	"github.com/kirisuberu/connect2bulk/internal/app/system/formutil"
	"github.com/kirisuberu/connect2bulk/internal/app/system/identity"
	"github.com/kirisuberu/connect2bulk/internal/app/system/inputval"
	"github.com/kirisuberu/connect2bulk/internal/app/system/mailer"
	"github.com/kirisuberu/connect2bulk/internal/app/system/normalize"
	"github.com/kirisuberu/connect2bulk/internal/app/system/timeouts"
	"github.com/kirisuberu/connect2bulk/internal/app/system/viewdata"
	"github.com/kirisuberu/connect2bulk/internal/domain/models"
)

var codeRe = regexp.MustCompile(`^\d{6}$`)

type verifyData struct {
	formutil.Base

	Email  string
	Resent bool
}

// ServeForm handles GET /verify. The email arrives as a query parameter
// from the registration redirect.
func (h *Handler) ServeForm(w http.ResponseWriter, r *http.Request) {
	data := verifyData{
		Email:  strings.TrimSpace(r.URL.Query().Get("email")),
		Resent: r.URL.Query().Get("resent") == "1",
	}
	formutil.SetBase(&data.Base, r, "Verify your email", "/register")
	templates.Render(w, r, "verify", data)
}

// HandleSubmit handles POST /verify.
//
// Confirming the code consumes the pending registration exactly once and
// materializes the firm and its administrator. The two inserts are not
// transactional; a failure between them leaves a confirmed account whose
// firm is recreated on the next verification attempt only if the pending
// record still exists, so failures here are logged loudly.
func (h *Handler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/verify")
		return
	}

	data := verifyData{Email: strings.TrimSpace(r.FormValue("email"))}
	code := strings.TrimSpace(r.FormValue("code"))

	if !inputval.IsValidEmail(data.Email) {
		h.renderFormWithError(w, r, data, "Enter the email address you registered with.")
		return
	}
	if !codeRe.MatchString(code) {
		h.renderFormWithError(w, r, data, "Enter the 6-digit code from the email.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Identity.ConfirmSignUp(ctx, data.Email, code); err != nil {
		switch err {
		case identity.ErrNotAuthorized:
			h.renderFormWithError(w, r, data, "That code is incorrect or has expired. Check the email or request a new code.")
		case identity.ErrUserNotFound:
			h.renderFormWithError(w, r, data, "No registration found for this email. Please register again.")
		default:
			h.ErrLog.LogServerError(w, r, "confirm sign up failed", err, "Verification failed. Please try again.", "/verify")
		}
		return
	}

	emailCI := normalize.Email(data.Email)
	reg, err := h.PendingReg.Consume(ctx, emailCI)
	if err == pendingreg.ErrNotFound {
		// Account is confirmed but the registration payload is gone
		// (expired or already consumed). Send them to sign in.
		h.Log.Warn("verified account with no pending registration", zap.String("email", emailCI))
		http.Redirect(w, r, h.LoginURL, http.StatusSeeOther)
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "consume pending registration failed", err, "Verification failed. Please try again.", "/verify")
		return
	}

	// The stored administrator email is always the normalized form, no
	// matter how it was typed at registration.
	reg.Firm.AdministratorEmail = emailCI
	firm, err := h.Firms.Create(ctx, reg.Firm)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "create firm failed", err, "Verification failed. Please contact support.", "/verify")
		return
	}

	if _, err := h.Users.Create(ctx, models.User{
		FirstName: firm.AdministratorFirstName,
		LastName:  firm.AdministratorLastName,
		Email:     firm.AdministratorEmail,
		Phone:     firm.Phone,
		Role:      models.RoleAdmin,
	}); err != nil {
		// Firm exists without its directory entry; log and keep going so
		// the administrator can still sign in.
		h.Log.Error("create administrator user failed", zap.Error(err), zap.String("email", emailCI), zap.String("firm_id", firm.ID.Hex()))
	}

	msg := mailer.BuildTempPasswordEmail(mailer.TempPasswordEmailData{
		SiteName:     viewdata.SiteName(),
		TempPassword: reg.TempPassword,
		LoginURL:     h.LoginURL,
	})
	msg.To = firm.AdministratorEmail
	if err := h.Mailer.Send(msg); err != nil {
		h.Log.Error("failed to send temp password email", zap.Error(err), zap.String("email", emailCI))
	}

	h.Log.Info("registration verified", zap.String("email", emailCI), zap.String("firm_id", firm.ID.Hex()))
	http.Redirect(w, r, h.LoginURL+"?verified=1&email="+url.QueryEscape(data.Email), http.StatusSeeOther)
}

// HandleResend handles POST /verify/resend.
func (h *Handler) HandleResend(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/verify")
		return
	}

	data := verifyData{Email: strings.TrimSpace(r.FormValue("email"))}
	if !inputval.IsValidEmail(data.Email) {
		h.renderFormWithError(w, r, data, "Enter the email address you registered with.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	code, err := h.Identity.ResendSignUpCode(ctx, data.Email)
	if err != nil {
		switch err {
		case identity.ErrUserNotFound:
			h.renderFormWithError(w, r, data, "No registration found for this email. Please register again.")
		default:
			h.Log.Warn("resend verification code failed", zap.Error(err), zap.String("email", normalize.Email(data.Email)))
			h.renderFormWithError(w, r, data, "A new code could not be sent right now. Please wait a few minutes and try again.")
		}
		return
	}

	msg := mailer.BuildVerificationEmail(mailer.VerificationEmailData{
		SiteName:  viewdata.SiteName(),
		Code:      code,
		ExpiresIn: h.CodeTTL,
	})
	msg.To = data.Email
	if err := h.Mailer.Send(msg); err != nil {
		h.Log.Error("failed to send verification email", zap.Error(err))
		h.renderFormWithError(w, r, data, "Failed to send the verification email. Please try again.")
		return
	}

	http.Redirect(w, r, "/verify?resent=1&email="+url.QueryEscape(data.Email), http.StatusSeeOther)
}

func (h *Handler) renderFormWithError(w http.ResponseWriter, r *http.Request, data verifyData, msg string) {
	formutil.SetBase(&data.Base, r, "Verify your email", "/register")
	data.SetError(msg)
	templates.Render(w, r, "verify", data)
}
