// internal/app/features/users/users.go
package users

import (
	"context"
	"net/http"
	"strings"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/kirisuberu/connect2bulk/internal/app/features/errors"
	"github.com/kirisuberu/connect2bulk/internal/app/store/users"
	"github.com/kirisuberu/connect2bulk/internal/app/system/formutil"
	"github.com/kirisuberu/connect2bulk/internal/app/system/identity"
	"github.com/kirisuberu/connect2bulk/internal/app/system/inputval"
	"github.com/kirisuberu/connect2bulk/internal/app/system/mailer"
	"github.com/kirisuberu/connect2bulk/internal/app/system/normalize"
	"github.com/kirisuberu/connect2bulk/internal/app/system/timeouts"
	"github.com/kirisuberu/connect2bulk/internal/app/system/viewdata"
	"github.com/kirisuberu/connect2bulk/internal/domain/models"
)

type listData struct {
	viewdata.BaseVM

	Users   []models.User
	Invited string
}

type inviteData struct {
	formutil.Base

	FirstName string
	LastName  string
	Email     string
	Phone     string
	Role      string
	Roles     []string
}

type editData struct {
	formutil.Base

	User  models.User
	Roles []string
}

// ServeList handles GET /users.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	us, err := h.Users.ListNewestFirst(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list users failed", err, "The user directory could not be loaded.", "/dashboard")
		return
	}

	data := listData{
		BaseVM:  viewdata.NewBaseVM(r, "Users", "/dashboard"),
		Users:   us,
		Invited: strings.TrimSpace(query.Get(r, "invited")),
	}
	templates.Render(w, r, "users_list", data)
}

// ServeInviteForm handles GET /users/invite.
func (h *Handler) ServeInviteForm(w http.ResponseWriter, r *http.Request) {
	data := inviteData{Role: models.RoleRegular, Roles: models.Roles}
	formutil.SetBase(&data.Base, r, "Invite a user", "/users")
	templates.Render(w, r, "users_invite", data)
}

// HandleInvite handles POST /users/invite.
//
// The identity account is created first, then the directory entry. The two
// writes are ordered, not transactional: if the directory insert fails the
// account stays and the invitee can still sign in, so the failure is logged
// and surfaced rather than rolled back.
func (h *Handler) HandleInvite(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/users")
		return
	}

	data := inviteData{
		FirstName: normalize.Name(r.FormValue("first_name")),
		LastName:  normalize.Name(r.FormValue("last_name")),
		Email:     strings.TrimSpace(r.FormValue("email")),
		Phone:     strings.TrimSpace(r.FormValue("phone")),
		Role:      normalize.Role(r.FormValue("role")),
		Roles:     models.Roles,
	}

	var msgs []string
	if data.FirstName == "" || data.LastName == "" {
		msgs = append(msgs, "First and last name are required.")
	}
	if !inputval.IsValidEmail(data.Email) {
		msgs = append(msgs, "Enter a valid email address.")
	}
	if data.Role != models.RoleAdmin && data.Role != models.RoleRegular {
		msgs = append(msgs, "Choose a role.")
	}
	if len(msgs) > 0 {
		h.renderInviteWithError(w, r, data, strings.Join(msgs, " "))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	tempPassword := identity.GenerateTempPassword()
	_, err := h.Identity.CreateAccount(ctx, data.Email, tempPassword, true, map[string]string{
		"given_name":  data.FirstName,
		"family_name": data.LastName,
	})
	if err == identity.ErrUserExists {
		h.renderInviteWithError(w, r, data, "An account with this email already exists.")
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "create invited account failed", err, "The invitation failed. Please try again.", "/users")
		return
	}

	if _, err := h.Users.Create(ctx, models.User{
		FirstName: data.FirstName,
		LastName:  data.LastName,
		Email:     data.Email,
		Phone:     data.Phone,
		Role:      data.Role,
	}); err != nil {
		// The account exists without a directory entry. Surface it; the
		// invitee can still sign in with the emailed credential.
		h.Log.Error("directory entry not created for invited account", zap.Error(err), zap.String("email", normalize.Email(data.Email)))
		h.renderInviteWithError(w, r, data, "The account was created but the directory entry was not. Check the list and retry if needed.")
		return
	}

	msg := mailer.BuildTempPasswordEmail(mailer.TempPasswordEmailData{
		SiteName:     viewdata.SiteName(),
		TempPassword: tempPassword,
		LoginURL:     h.LoginURL,
	})
	msg.To = data.Email
	if err := h.Mailer.Send(msg); err != nil {
		h.Log.Error("failed to send invitation email", zap.Error(err), zap.String("email", normalize.Email(data.Email)))
	}

	h.Log.Info("user invited", zap.String("email", normalize.Email(data.Email)), zap.String("role", data.Role))
	http.Redirect(w, r, "/users?invited="+normalize.Email(data.Email), http.StatusSeeOther)
}

// ServeEditForm handles GET /users/{id}/edit.
func (h *Handler) ServeEditForm(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		errors.RenderNotFound(w, r, "That user no longer exists.", "/users")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.Users.GetByID(ctx, id)
	if err == userstore.ErrNotFound {
		errors.RenderNotFound(w, r, "That user no longer exists.", "/users")
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "get user failed", err, "The user could not be loaded.", "/users")
		return
	}

	data := editData{User: u, Roles: models.Roles}
	formutil.SetBase(&data.Base, r, "Edit user", "/users")
	templates.Render(w, r, "users_edit", data)
}

// HandleUpdate handles POST /users/{id}. Name, phone, and role are
// editable; the email link to the identity account is permanent.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		errors.RenderNotFound(w, r, "That user no longer exists.", "/users")
		return
	}
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/users")
		return
	}

	u := models.User{
		ID:        id,
		FirstName: normalize.Name(r.FormValue("first_name")),
		LastName:  normalize.Name(r.FormValue("last_name")),
		Phone:     strings.TrimSpace(r.FormValue("phone")),
		Role:      normalize.Role(r.FormValue("role")),
	}
	if u.FirstName == "" || u.LastName == "" {
		data := editData{User: u, Roles: models.Roles}
		formutil.SetBase(&data.Base, r, "Edit user", "/users")
		data.SetError("First and last name are required.")
		templates.Render(w, r, "users_edit", data)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Users.Update(ctx, id, u); err != nil {
		if err == userstore.ErrNotFound {
			errors.RenderNotFound(w, r, "That user no longer exists.", "/users")
			return
		}
		h.ErrLog.LogServerError(w, r, "update user failed", err, "The user could not be updated. Please try again.", "/users")
		return
	}

	h.Log.Info("user updated", zap.String("id", id.Hex()), zap.String("role", u.Role))
	http.Redirect(w, r, "/users", http.StatusSeeOther)
}

// HandleDelete handles POST /users/{id}/delete. Only the directory entry is
// removed; the identity account is left untouched (no rollback semantics in
// either direction).
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		errors.RenderNotFound(w, r, "That user no longer exists.", "/users")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if _, err := h.Users.Delete(ctx, id); err != nil {
		h.ErrLog.LogServerError(w, r, "delete user failed", err, "The user could not be removed. Please try again.", "/users")
		return
	}

	h.Log.Info("user removed from directory", zap.String("id", id.Hex()))
	http.Redirect(w, r, "/users", http.StatusSeeOther)
}

func (h *Handler) renderInviteWithError(w http.ResponseWriter, r *http.Request, data inviteData, msg string) {
	formutil.SetBase(&data.Base, r, "Invite a user", "/users")
	data.SetError(msg)
	templates.Render(w, r, "users_invite", data)
}
