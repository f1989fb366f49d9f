// internal/app/features/login/login.go
package login

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/dalemusser/waffle/pantry/urlutil"
	"go.uber.org/zap"

	"github.com/kirisuberu/connect2bulk/internal/app/store/users"
	"github.com/kirisuberu/connect2bulk/internal/app/system/auth"
	"github.com/kirisuberu/connect2bulk/internal/app/system/formutil"
	"github.com/kirisuberu/connect2bulk/internal/app/system/identity"
	"github.com/kirisuberu/connect2bulk/internal/app/system/inputval"
	"github.com/kirisuberu/connect2bulk/internal/app/system/normalize"
	"github.com/kirisuberu/connect2bulk/internal/app/system/timeouts"
	"github.com/kirisuberu/connect2bulk/internal/domain/models"
)

// MinPasswordLength is the shortest accepted permanent password.
const MinPasswordLength = 8

type loginData struct {
	formutil.Base

	Email     string
	ReturnURL string
	Verified  bool
	Reset     bool
}

type newPasswordData struct {
	formutil.Base

	Email     string
	ReturnURL string
}

// ServeForm handles GET /login.
func (h *Handler) ServeForm(w http.ResponseWriter, r *http.Request) {
	data := loginData{
		Email:     strings.TrimSpace(query.Get(r, "email")),
		ReturnURL: urlutil.SafeReturn(query.Get(r, "return"), "", "/dashboard"),
		Verified:  query.Get(r, "verified") == "1",
		Reset:     query.Get(r, "reset") == "1",
	}
	formutil.SetBase(&data.Base, r, "Sign in", "/")
	if code := query.Get(r, "error"); code != "" {
		data.SetError(signInErrorMessage(code))
	}
	templates.Render(w, r, "login", data)
}

// signInErrorMessage maps error codes carried on redirects back to /login
// (mostly from the Google sign-in flow) to user-facing text.
func signInErrorMessage(code string) string {
	switch code {
	case "google_denied":
		return "Google sign-in was cancelled."
	case "no_account":
		return "No Connect2Bulk account matches that Google account. Register first, then sign in."
	case "invalid_state", "invalid_code", "token_exchange", "user_info":
		return "Google sign-in failed. Please try again."
	case "google_not_configured":
		return "Google sign-in is not available."
	default:
		return "Sign-in failed. Please try again."
	}
}

// HandleSubmit handles POST /login.
func (h *Handler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/login")
		return
	}

	data := loginData{
		Email:     strings.TrimSpace(r.FormValue("email")),
		ReturnURL: urlutil.SafeReturn(r.FormValue("return"), "", "/dashboard"),
	}
	password := r.FormValue("password")

	if !inputval.IsValidEmail(data.Email) || password == "" {
		h.renderFormWithError(w, r, data, "Enter your email and password.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	step, err := h.Identity.SignIn(ctx, data.Email, password)
	if err != nil {
		if err == identity.ErrNotAuthorized {
			h.renderFormWithError(w, r, data, "Incorrect email or password.")
			return
		}
		h.ErrLog.LogServerError(w, r, "sign in failed", err, "Sign-in failed. Please try again.", "/login")
		return
	}

	switch step {
	case identity.StepConfirmSignUp:
		http.Redirect(w, r, "/verify?email="+url.QueryEscape(data.Email), http.StatusSeeOther)
		return
	case identity.StepResetRequired:
		http.Redirect(w, r, "/reset-password?email="+url.QueryEscape(data.Email), http.StatusSeeOther)
		return
	case identity.StepNewPasswordRequired:
		np := newPasswordData{Email: data.Email, ReturnURL: data.ReturnURL}
		formutil.SetBase(&np.Base, r, "Choose a new password", "/login")
		templates.Render(w, r, "login_newpassword", np)
		return
	}

	h.completeSignIn(w, r, ctx, data.Email, data.ReturnURL)
}

// HandleNewPassword handles POST /login/new-password, finishing a sign-in
// that was interrupted by a temporary credential. The temporary password is
// re-entered here; nothing is carried server-side between the two steps.
func (h *Handler) HandleNewPassword(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/login")
		return
	}

	data := newPasswordData{
		Email:     strings.TrimSpace(r.FormValue("email")),
		ReturnURL: urlutil.SafeReturn(r.FormValue("return"), "", "/dashboard"),
	}
	tempPassword := r.FormValue("temp_password")
	newPassword := r.FormValue("new_password")
	confirm := r.FormValue("confirm_password")

	if msg := validateNewPassword(newPassword, confirm); msg != "" {
		h.renderNewPasswordWithError(w, r, data, msg)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Identity.CompleteNewPassword(ctx, data.Email, tempPassword, newPassword); err != nil {
		if err == identity.ErrNotAuthorized {
			h.renderNewPasswordWithError(w, r, data, "The temporary password is incorrect.")
			return
		}
		h.ErrLog.LogServerError(w, r, "complete new password failed", err, "Password change failed. Please try again.", "/login")
		return
	}

	h.completeSignIn(w, r, ctx, data.Email, data.ReturnURL)
}

// completeSignIn establishes the session and redirects. The directory entry
// supplies the display name and role; an account without one signs in as a
// Regular user under their email.
func (h *Handler) completeSignIn(w http.ResponseWriter, r *http.Request, ctx context.Context, email, returnURL string) {
	emailCI := normalize.Email(email)

	su := auth.SessionUser{Email: emailCI, Name: emailCI, Role: models.RoleRegular}
	if u, err := h.Users.GetByEmail(ctx, emailCI); err == nil {
		su.Name = strings.TrimSpace(u.FirstName + " " + u.LastName)
		su.Role = u.Role
	} else if err != userstore.ErrNotFound {
		h.Log.Warn("directory lookup failed during sign-in", zap.Error(err), zap.String("email", emailCI))
	}

	if err := h.SessionMgr.SignIn(w, r, su); err != nil {
		h.ErrLog.LogServerError(w, r, "save session failed", err, "Sign-in failed. Please try again.", "/login")
		return
	}

	h.Log.Info("user signed in", zap.String("email", emailCI), zap.String("role", su.Role))
	http.Redirect(w, r, returnURL, http.StatusSeeOther)
}

func validateNewPassword(newPassword, confirm string) string {
	if len(newPassword) < MinPasswordLength {
		return "The new password must be at least 8 characters."
	}
	if newPassword != confirm {
		return "The passwords do not match."
	}
	return ""
}

func (h *Handler) renderFormWithError(w http.ResponseWriter, r *http.Request, data loginData, msg string) {
	formutil.SetBase(&data.Base, r, "Sign in", "/")
	data.SetError(msg)
	templates.Render(w, r, "login", data)
}

func (h *Handler) renderNewPasswordWithError(w http.ResponseWriter, r *http.Request, data newPasswordData, msg string) {
	formutil.SetBase(&data.Base, r, "Choose a new password", "/login")
	data.SetError(msg)
	templates.Render(w, r, "login_newpassword", data)
}
