// internal/app/features/profile/profile.go
package profile

import (
	"context"
	"net/http"
	"strings"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"

	"github.com/kirisuberu/connect2bulk/internal/app/store/users"
	"github.com/kirisuberu/connect2bulk/internal/app/system/auth"
	"github.com/kirisuberu/connect2bulk/internal/app/system/formutil"
	"github.com/kirisuberu/connect2bulk/internal/app/system/identity"
	"github.com/kirisuberu/connect2bulk/internal/app/system/normalize"
	"github.com/kirisuberu/connect2bulk/internal/app/system/timeouts"
)

// MinPasswordLength is the shortest accepted permanent password.
const MinPasswordLength = 8

type profileData struct {
	formutil.Base

	Email     string
	FirstName string
	LastName  string
	Phone     string
	Saved     bool
}

// ServeProfile handles GET /profile.
func (h *Handler) ServeProfile(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	data := profileData{Email: u.Email, Saved: query.Get(r, "saved") == "1"}

	attrs, err := h.Identity.FetchAttributes(ctx, u.Email)
	if err != nil {
		h.Log.Warn("fetch account attributes failed", zap.Error(err), zap.String("email", normalize.Email(u.Email)))
	} else {
		data.FirstName = attrs["given_name"]
		data.LastName = attrs["family_name"]
		data.Phone = attrs["phone_number"]
	}

	formutil.SetBase(&data.Base, r, "My profile", "/dashboard")
	templates.Render(w, r, "profile", data)
}

// HandleUpdate handles POST /profile. Attributes go to the identity
// account; the directory entry is kept in step when one exists.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/profile")
		return
	}

	data := profileData{
		Email:     u.Email,
		FirstName: normalize.Name(r.FormValue("first_name")),
		LastName:  normalize.Name(r.FormValue("last_name")),
		Phone:     strings.TrimSpace(r.FormValue("phone")),
	}
	if data.FirstName == "" || data.LastName == "" {
		h.renderWithError(w, r, data, "First and last name are required.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	err := h.Identity.UpdateAttributes(ctx, u.Email, map[string]string{
		"given_name":   data.FirstName,
		"family_name":  data.LastName,
		"phone_number": data.Phone,
	})
	if err != nil {
		h.ErrLog.LogServerError(w, r, "update attributes failed", err, "Your profile could not be saved. Please try again.", "/profile")
		return
	}

	if entry, err := h.Users.GetByEmail(ctx, normalize.Email(u.Email)); err == nil {
		entry.FirstName = data.FirstName
		entry.LastName = data.LastName
		entry.Phone = data.Phone
		if err := h.Users.Update(ctx, entry.ID, entry); err != nil {
			h.Log.Warn("directory entry not synced with profile", zap.Error(err), zap.String("email", entry.EmailCI))
		}
	} else if err != userstore.ErrNotFound {
		h.Log.Warn("directory lookup failed during profile save", zap.Error(err))
	}

	// Refresh the display name cached in the session.
	if err := h.SessionMgr.SignIn(w, r, auth.SessionUser{
		Email: u.Email,
		Name:  strings.TrimSpace(data.FirstName + " " + data.LastName),
		Role:  u.Role,
	}); err != nil {
		h.Log.Warn("session not refreshed after profile save", zap.Error(err))
	}

	http.Redirect(w, r, "/profile?saved=1", http.StatusSeeOther)
}

// HandlePasswordChange handles POST /profile/password.
func (h *Handler) HandlePasswordChange(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/profile")
		return
	}

	current := r.FormValue("current_password")
	next := r.FormValue("new_password")
	confirm := r.FormValue("confirm_password")

	data := profileData{Email: u.Email}
	switch {
	case current == "":
		h.renderWithError(w, r, data, "Enter your current password.")
		return
	case len(next) < MinPasswordLength:
		h.renderWithError(w, r, data, "The new password must be at least 8 characters.")
		return
	case next != confirm:
		h.renderWithError(w, r, data, "The passwords do not match.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Identity.UpdatePassword(ctx, u.Email, current, next); err != nil {
		if err == identity.ErrNotAuthorized {
			h.renderWithError(w, r, data, "Your current password is incorrect.")
			return
		}
		h.ErrLog.LogServerError(w, r, "update password failed", err, "The password change failed. Please try again.", "/profile")
		return
	}

	h.Log.Info("password changed", zap.String("email", normalize.Email(u.Email)))
	http.Redirect(w, r, "/profile?saved=1", http.StatusSeeOther)
}

func (h *Handler) renderWithError(w http.ResponseWriter, r *http.Request, data profileData, msg string) {
	formutil.SetBase(&data.Base, r, "My profile", "/dashboard")
	data.SetError(msg)
	templates.Render(w, r, "profile", data)
}
