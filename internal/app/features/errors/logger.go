// internal/app/features/errors/logger.go
package errors

import (
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

// ErrorLogger pairs structured logging with user-facing error pages so
// handlers report failures in one call.
type ErrorLogger struct {
	log *zap.Logger
}

// NewErrorLogger constructs an ErrorLogger.
func NewErrorLogger(logger *zap.Logger) *ErrorLogger {
	return &ErrorLogger{log: logger}
}

// LogServerError logs the internal error and renders a friendly error page
// with the given user message.
func (e *ErrorLogger) LogServerError(w http.ResponseWriter, r *http.Request, internalMsg string, err error, userMsg, backURL string) {
	e.log.Error(internalMsg, zap.Error(err), zap.String("path", r.URL.Path), zap.String("method", r.Method))
	e.renderError(w, r, http.StatusInternalServerError, "Something went wrong", userMsg, backURL)
}

// LogBadRequest logs a client error and renders a friendly error page.
func (e *ErrorLogger) LogBadRequest(w http.ResponseWriter, r *http.Request, internalMsg string, err error, userMsg, backURL string) {
	e.log.Warn(internalMsg, zap.Error(err), zap.String("path", r.URL.Path), zap.String("method", r.Method))
	e.renderError(w, r, http.StatusBadRequest, "Invalid request", userMsg, backURL)
}

func (e *ErrorLogger) renderError(w http.ResponseWriter, r *http.Request, status int, title, userMsg, backURL string) {
	role, name, signed := userCtx(r)
	if backURL == "" {
		backURL = "/"
	}
	data := pageData{
		Title:      title,
		IsLoggedIn: signed,
		Role:       role,
		UserName:   name,
		Message:    userMsg,
		BackURL:    backURL,
	}
	w.WriteHeader(status)
	templates.Render(w, r, "error_generic", data)
}
