package resetpassword

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"go.uber.org/zap"

	uierrors "github.com/kirisuberu/connect2bulk/internal/app/features/errors"
	"github.com/kirisuberu/connect2bulk/internal/app/system/identity"
	"github.com/kirisuberu/connect2bulk/internal/testutil"
)

func newTestHandler() (*Handler, *identity.Fake, *testutil.MailRecorder) {
	logger := zap.NewNop()
	fake := identity.NewFake()
	mail := &testutil.MailRecorder{}
	return NewHandler(fake, mail, "15 minutes", uierrors.NewErrorLogger(logger), logger), fake, mail
}

func postForm(t *testing.T, path string, form url.Values, serve http.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("POST", path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	serve(rec, req)
	return rec
}

func TestHandleRequest_KnownEmailSendsCode(t *testing.T) {
	h, fake, mail := newTestHandler()
	ctx := context.Background()

	const email = "pat@acme.example"
	if _, err := fake.CreateAccount(ctx, email, "pw", false, nil); err != nil {
		t.Fatalf("CreateAccount: %v", err)
	}

	rec := postForm(t, "/reset-password", url.Values{"email": {email}}, h.HandleRequest)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if loc := rec.Header().Get("Location"); !strings.HasPrefix(loc, "/reset-password/confirm?sent=1") {
		t.Errorf("Location: got %q", loc)
	}
	if len(mail.Sent) != 1 || !strings.Contains(mail.Sent[0].Body, identity.FakeCode) {
		t.Errorf("reset email should carry the code, got %+v", mail.Sent)
	}
}

func TestHandleRequest_UnknownEmailIsSilent(t *testing.T) {
	h, _, mail := newTestHandler()

	rec := postForm(t, "/reset-password", url.Values{"email": {"nobody@acme.example"}}, h.HandleRequest)

	// Same redirect as the known-email case, but no mail.
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if loc := rec.Header().Get("Location"); !strings.HasPrefix(loc, "/reset-password/confirm?sent=1") {
		t.Errorf("Location: got %q", loc)
	}
	if len(mail.Sent) != 0 {
		t.Errorf("no mail should be sent for an unknown email, got %d", len(mail.Sent))
	}
}

func TestHandleConfirm_ResetsPassword(t *testing.T) {
	h, fake, _ := newTestHandler()
	ctx := context.Background()

	const email = "pat@acme.example"
	if _, err := fake.CreateAccount(ctx, email, "old-pw", false, nil); err != nil {
		t.Fatalf("CreateAccount: %v", err)
	}
	if err := fake.ConfirmSignUp(ctx, email, identity.FakeCode); err != nil {
		t.Fatalf("ConfirmSignUp: %v", err)
	}
	if _, err := fake.RequestPasswordReset(ctx, email); err != nil {
		t.Fatalf("RequestPasswordReset: %v", err)
	}

	form := url.Values{
		"email":            {email},
		"code":             {identity.FakeCode},
		"new_password":     {"brand-new-pw"},
		"confirm_password": {"brand-new-pw"},
	}
	rec := postForm(t, "/reset-password/confirm", form, h.HandleConfirm)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status: got %d, want %d (body: %s)", rec.Code, http.StatusSeeOther, rec.Body.String())
	}
	if loc := rec.Header().Get("Location"); !strings.HasPrefix(loc, "/login?reset=1") {
		t.Errorf("Location: got %q, want /login?reset=1...", loc)
	}

	if step, err := fake.SignIn(ctx, email, "brand-new-pw"); err != nil || step != identity.StepDone {
		t.Errorf("SignIn with new password: step=%v err=%v", step, err)
	}
	if _, err := fake.SignIn(ctx, email, "old-pw"); err != identity.ErrNotAuthorized {
		t.Errorf("old password should be rejected, got %v", err)
	}
}
