// Package identity is the credential layer behind sign-in: account creation
// with email confirmation, temporary passwords for invited users, and the
// stepped sign-in flow that tells the caller what the user must do next.
package identity

import (
	"context"
	"crypto/rand"
	"errors"
	"math/big"
)

// NextStep tells the caller what must happen after a sign-in attempt.
type NextStep int

const (
	// StepDone means the credential was accepted and the session can start.
	StepDone NextStep = iota
	// StepConfirmSignUp means the email has not been verified yet.
	StepConfirmSignUp
	// StepNewPasswordRequired means the account is still on its generated
	// temporary password and a permanent one must be chosen.
	StepNewPasswordRequired
	// StepResetRequired means a password reset must complete before the
	// sign-in can.
	StepResetRequired
)

var (
	// ErrNotAuthorized covers wrong credentials, unknown accounts, and
	// disabled accounts alike, so responses do not reveal which it was.
	ErrNotAuthorized = errors.New("not authorized: incorrect email or password")
	// ErrUserExists is returned when creating an account for an email that
	// already has one.
	ErrUserExists = errors.New("an account with this email already exists")
	// ErrUserNotFound is returned by operations that require an existing
	// account outside the sign-in path.
	ErrUserNotFound = errors.New("account not found")
)

// Provider is the identity surface the features build on. The Mongo-backed
// implementation is the production one; tests substitute a Fake.
//
// Operations that issue verification or reset codes return the plain code;
// delivering it (email) is the caller's job.
type Provider interface {
	// CreateAccount registers a credential for the email and returns the
	// verification code for confirming it. temp marks the password as a
	// generated temporary credential.
	CreateAccount(ctx context.Context, email, password string, temp bool, attrs map[string]string) (code string, err error)

	// SignIn checks the credential and reports the next step.
	SignIn(ctx context.Context, email, password string) (NextStep, error)

	// ConfirmSignUp verifies the emailed code and confirms the account.
	ConfirmSignUp(ctx context.Context, email, code string) error

	// ResendSignUpCode issues a fresh verification code.
	ResendSignUpCode(ctx context.Context, email string) (string, error)

	// CompleteNewPassword exchanges the temporary password for a permanent
	// one, finishing a StepNewPasswordRequired sign-in.
	CompleteNewPassword(ctx context.Context, email, tempPassword, newPassword string) error

	// UpdatePassword changes the password for a signed-in user; the current
	// password is re-checked.
	UpdatePassword(ctx context.Context, email, current, next string) error

	// UpdateAttributes merges profile attributes into the account.
	UpdateAttributes(ctx context.Context, email string, attrs map[string]string) error

	// FetchAttributes returns the account's profile attributes.
	FetchAttributes(ctx context.Context, email string) (map[string]string, error)

	// RequestPasswordReset issues a reset code. For unknown emails it
	// returns "" and no error, so the response cannot be used to probe
	// which addresses have accounts.
	RequestPasswordReset(ctx context.Context, email string) (string, error)

	// ConfirmPasswordReset verifies the reset code and sets the new
	// password.
	ConfirmPasswordReset(ctx context.Context, email, code, newPassword string) error
}

const tempPasswordAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghjkmnpqrstuvwxyz23456789"

// GenerateTempPassword returns a random 12-character temporary credential
// drawn from an unambiguous alphabet. Panics if the system's cryptographic
// random number generator fails.
func GenerateTempPassword() string {
	const n = 12
	b := make([]byte, n)
	max := big.NewInt(int64(len(tempPasswordAlphabet)))
	for i := range b {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			panic("crypto/rand failed: " + err.Error())
		}
		b[i] = tempPasswordAlphabet[idx.Int64()]
	}
	return string(b)
}
