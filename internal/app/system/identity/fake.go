// internal/app/system/identity/fake.go
package identity

import (
	"context"
	"sync"

	"github.com/kirisuberu/connect2bulk/internal/app/system/normalize"
)

type fakeAccount struct {
	password  string
	temp      bool
	confirmed bool
	reset     bool
	attrs     map[string]string
}

// Fake is an in-memory Provider for handler tests. Codes are fixed to
// FakeCode so tests can complete verification flows without email.
type Fake struct {
	mu       sync.Mutex
	accounts map[string]*fakeAccount

	// Err, when set, is returned by every operation. Tests use it to
	// exercise failure paths.
	Err error
}

// FakeCode is the verification and reset code every Fake flow accepts.
const FakeCode = "123456"

var _ Provider = (*Fake)(nil)

func NewFake() *Fake {
	return &Fake{accounts: make(map[string]*fakeAccount)}
}

// Confirmed reports whether the email's account exists and is confirmed.
func (f *Fake) Confirmed(email string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.accounts[normalize.Email(email)]
	return ok && a.confirmed
}

func (f *Fake) CreateAccount(_ context.Context, email, password string, temp bool, attrs map[string]string) (string, error) {
	if f.Err != nil {
		return "", f.Err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	key := normalize.Email(email)
	if _, ok := f.accounts[key]; ok {
		return "", ErrUserExists
	}
	cp := make(map[string]string, len(attrs))
	for k, v := range attrs {
		cp[k] = v
	}
	f.accounts[key] = &fakeAccount{password: password, temp: temp, attrs: cp}
	return FakeCode, nil
}

func (f *Fake) SignIn(_ context.Context, email, password string) (NextStep, error) {
	if f.Err != nil {
		return StepDone, f.Err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.accounts[normalize.Email(email)]
	if !ok || a.password != password {
		return StepDone, ErrNotAuthorized
	}
	switch {
	case !a.confirmed:
		return StepConfirmSignUp, nil
	case a.temp:
		return StepNewPasswordRequired, nil
	case a.reset:
		return StepResetRequired, nil
	}
	return StepDone, nil
}

func (f *Fake) ConfirmSignUp(_ context.Context, email, code string) error {
	if f.Err != nil {
		return f.Err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.accounts[normalize.Email(email)]
	if !ok {
		return ErrUserNotFound
	}
	if code != FakeCode {
		return ErrNotAuthorized
	}
	a.confirmed = true
	return nil
}

func (f *Fake) ResendSignUpCode(_ context.Context, email string) (string, error) {
	if f.Err != nil {
		return "", f.Err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.accounts[normalize.Email(email)]; !ok {
		return "", ErrUserNotFound
	}
	return FakeCode, nil
}

func (f *Fake) CompleteNewPassword(_ context.Context, email, tempPassword, newPassword string) error {
	if f.Err != nil {
		return f.Err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.accounts[normalize.Email(email)]
	if !ok || a.password != tempPassword {
		return ErrNotAuthorized
	}
	a.password = newPassword
	a.temp = false
	a.confirmed = true
	return nil
}

func (f *Fake) UpdatePassword(_ context.Context, email, current, next string) error {
	if f.Err != nil {
		return f.Err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.accounts[normalize.Email(email)]
	if !ok || a.password != current {
		return ErrNotAuthorized
	}
	a.password = next
	return nil
}

func (f *Fake) UpdateAttributes(_ context.Context, email string, attrs map[string]string) error {
	if f.Err != nil {
		return f.Err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.accounts[normalize.Email(email)]
	if !ok {
		return ErrUserNotFound
	}
	if a.attrs == nil {
		a.attrs = make(map[string]string)
	}
	for k, v := range attrs {
		a.attrs[k] = v
	}
	return nil
}

func (f *Fake) FetchAttributes(_ context.Context, email string) (map[string]string, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.accounts[normalize.Email(email)]
	if !ok {
		return nil, ErrUserNotFound
	}
	out := make(map[string]string, len(a.attrs)+1)
	for k, v := range a.attrs {
		out[k] = v
	}
	out["email"] = email
	return out, nil
}

func (f *Fake) RequestPasswordReset(_ context.Context, email string) (string, error) {
	if f.Err != nil {
		return "", f.Err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.accounts[normalize.Email(email)]
	if !ok {
		return "", nil
	}
	a.reset = true
	return FakeCode, nil
}

func (f *Fake) ConfirmPasswordReset(_ context.Context, email, code, newPassword string) error {
	if f.Err != nil {
		return f.Err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.accounts[normalize.Email(email)]
	if !ok {
		return ErrUserNotFound
	}
	if code != FakeCode {
		return ErrNotAuthorized
	}
	a.password = newPassword
	a.reset = false
	return nil
}
