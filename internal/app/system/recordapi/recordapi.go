// Package recordapi defines the error contract for the record-store layer and
// the authorization-context fallback used by callers.
//
// The store exposes two authorization contexts: an authenticated-user context
// and a guest context. Callers run in the authenticated context first and fall
// back to the guest context only when the store answers with an
// authorization-denied error. The denied/other distinction is decided here,
// once, rather than re-matched against message text at every call site.
package recordapi

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a store error.
type Kind int

const (
	// KindOther is any store failure that is not an authorization denial.
	KindOther Kind = iota
	// KindAuthorizationDenied means the current authorization context may
	// not perform the operation; the guest context may still succeed.
	KindAuthorizationDenied
	// KindNotFound means the record does not exist (or is not yet visible).
	KindNotFound
)

// AuthMode selects the authorization context for a store operation.
type AuthMode int

const (
	// ModeUser is the authenticated-user context.
	ModeUser AuthMode = iota
	// ModeGuest is the anonymous context.
	ModeGuest
)

// Error is a classified store error.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Denied wraps err as an authorization-denied error.
func Denied(op string, err error) error {
	return &Error{Kind: KindAuthorizationDenied, Op: op, Err: err}
}

// Wrap classifies err by provider message and wraps it. This is the single
// place where provider error text is pattern-matched.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: Classify(err), Op: op, Err: err}
}

// Classify maps a raw provider error to a Kind. Provider SDKs signal denied
// authorization through message text rather than a typed code, so the match
// happens here and nowhere else.
func Classify(err error) Kind {
	var re *Error
	if errors.As(err, &re) {
		return re.Kind
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "not authorized"),
		strings.Contains(msg, "unauthorized"),
		strings.Contains(msg, "missing credentials"):
		return KindAuthorizationDenied
	case strings.Contains(msg, "no documents in result"),
		strings.Contains(msg, "not found"):
		return KindNotFound
	}
	return KindOther
}

// KindOf returns the Kind of err, KindOther for unclassified errors.
func KindOf(err error) Kind {
	if err == nil {
		return KindOther
	}
	return Classify(err)
}

// WithAuthFallback runs fn in the authenticated context, retrying once in the
// guest context if and only if the failure is an authorization denial. Any
// other error is returned as-is.
func WithAuthFallback(ctx context.Context, fn func(ctx context.Context, mode AuthMode) error) error {
	err := fn(ctx, ModeUser)
	if err == nil {
		return nil
	}
	if KindOf(err) != KindAuthorizationDenied {
		return err
	}
	return fn(ctx, ModeGuest)
}
