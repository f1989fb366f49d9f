// Package formutil provides helpers for form re-rendering with validation
// errors.
//
// When a form submission fails validation, the form is re-rendered with the
// user's previously entered values echoed back, an error message, and the
// context data the form needs (dropdowns, etc.). Base carries the common
// fields; embed it in the form's data struct.
//
// Example usage:
//
//	type newLoadData struct {
//		formutil.Base
//		Origin      string
//		Destination string
//	}
//
//	// In your handler:
//	data := newLoadData{Origin: origin, Destination: dest}
//	formutil.SetBase(&data.Base, r, "Post Load", "/dashboard")
//	data.SetError("Origin is required.")
//	templates.Render(w, r, "loadboard_form", data)
package formutil

import (
	"html/template"
	"net/http"

	"github.com/dalemusser/waffle/pantry/httpnav"
	"github.com/gorilla/csrf"

	"github.com/kirisuberu/connect2bulk/internal/app/system/auth"
)

// Base contains common fields for form pages.
type Base struct {
	Title       string
	IsLoggedIn  bool
	Role        string
	UserName    string
	BackURL     string
	CurrentPath string
	CSRFToken   string
	Error       template.HTML
}

// SetBase populates the common Base fields from the request context.
func SetBase(b *Base, r *http.Request, title, backDefault string) {
	b.Title = title
	b.BackURL = httpnav.ResolveBackURL(r, backDefault)
	b.CurrentPath = httpnav.CurrentPath(r)
	b.CSRFToken = csrf.Token(r)
	if u, ok := auth.CurrentUser(r); ok {
		b.IsLoggedIn = true
		b.Role = u.Role
		b.UserName = u.Name
	}
}

// SetError sets the error message as template.HTML.
func (b *Base) SetError(msg string) {
	b.Error = template.HTML(msg)
}
