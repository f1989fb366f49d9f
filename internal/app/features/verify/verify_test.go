package verify

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"go.uber.org/zap"

	uierrors "github.com/kirisuberu/connect2bulk/internal/app/features/errors"
	"github.com/kirisuberu/connect2bulk/internal/app/store/pendingreg"
	"github.com/kirisuberu/connect2bulk/internal/app/system/identity"
	"github.com/kirisuberu/connect2bulk/internal/domain/models"
	"github.com/kirisuberu/connect2bulk/internal/testutil"
)

func postVerify(t *testing.T, h *Handler, email, code string) *httptest.ResponseRecorder {
	t.Helper()
	form := url.Values{"email": {email}, "code": {code}}
	req := httptest.NewRequest("POST", "/verify", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.HandleSubmit(rec, req)
	return rec
}

func TestHandleSubmit_CompletesRegistration(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fake := identity.NewFake()
	mail := &testutil.MailRecorder{}
	pending := pendingreg.New(db, 0)
	h := NewHandler(db, fake, mail, pending, "15 minutes", "/login", uierrors.NewErrorLogger(zap.NewNop()), zap.NewNop())

	const email = "pat@acme.example"
	if _, err := fake.CreateAccount(ctx, email, "Temp-Pass-123", true, nil); err != nil {
		t.Fatalf("CreateAccount: %v", err)
	}
	if _, err := pending.Put(ctx, models.PendingRegistration{
		EmailCI:      email,
		TempPassword: "Temp-Pass-123",
		Firm: models.Firm{
			FirmName:               "Acme Hauling",
			FirmType:               "Carrier",
			AdministratorEmail:     email,
			AdministratorFirstName: "Pat",
			AdministratorLastName:  "Jones",
			State:                  "MO",
			Zip:                    "65201",
		},
	}); err != nil {
		t.Fatalf("Put pending registration: %v", err)
	}

	rec := postVerify(t, h, email, identity.FakeCode)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status: got %d, want %d (body: %s)", rec.Code, http.StatusSeeOther, rec.Body.String())
	}
	if loc := rec.Header().Get("Location"); !strings.HasPrefix(loc, "/login?verified=1") {
		t.Errorf("Location: got %q, want /login?verified=1...", loc)
	}
	if !fake.Confirmed(email) {
		t.Error("account should be confirmed after verification")
	}

	firm, err := h.Firms.FindByAdminEmailCI(ctx, email)
	if err != nil {
		t.Fatalf("firm not created: %v", err)
	}
	if firm.FirmName != "Acme Hauling" {
		t.Errorf("firm name: got %q", firm.FirmName)
	}

	user, err := h.Users.GetByEmail(ctx, email)
	if err != nil {
		t.Fatalf("administrator user not created: %v", err)
	}
	if user.Role != models.RoleAdmin {
		t.Errorf("administrator role: got %q, want %q", user.Role, models.RoleAdmin)
	}

	if _, err := pending.Get(ctx, email); err != pendingreg.ErrNotFound {
		t.Errorf("pending registration should be consumed, Get returned %v", err)
	}

	if len(mail.Sent) != 1 || !strings.Contains(mail.Sent[0].Body, "Temp-Pass-123") {
		t.Errorf("temp password email not sent correctly: %+v", mail.Sent)
	}
}

func TestHandleSubmit_LowercasesAdministratorEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fake := identity.NewFake()
	mail := &testutil.MailRecorder{}
	pending := pendingreg.New(db, 0)
	h := NewHandler(db, fake, mail, pending, "15 minutes", "/login", uierrors.NewErrorLogger(zap.NewNop()), zap.NewNop())

	// The administrator typed a mixed-case address at registration; the
	// pending payload keeps it as typed.
	const typed = "Admin@Acme.example"
	if _, err := fake.CreateAccount(ctx, typed, "Temp-Pass-123", true, nil); err != nil {
		t.Fatalf("CreateAccount: %v", err)
	}
	if _, err := pending.Put(ctx, models.PendingRegistration{
		EmailCI:      "admin@acme.example",
		TempPassword: "Temp-Pass-123",
		Firm: models.Firm{
			FirmName:           "Acme LLC",
			FirmType:           "Carrier",
			AdministratorEmail: typed,
			State:              "NY",
			Zip:                "123456789",
		},
	}); err != nil {
		t.Fatalf("Put pending registration: %v", err)
	}

	rec := postVerify(t, h, typed, identity.FakeCode)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status: got %d, want %d (body: %s)", rec.Code, http.StatusSeeOther, rec.Body.String())
	}

	firm, err := h.Firms.FindByAdminEmailCI(ctx, "admin@acme.example")
	if err != nil {
		t.Fatalf("firm not created: %v", err)
	}
	if firm.AdministratorEmail != "admin@acme.example" {
		t.Errorf("administrator email stored as %q, want lower-cased", firm.AdministratorEmail)
	}
	if firm.FirmType != "Carrier" {
		t.Errorf("firm type: got %q, want %q", firm.FirmType, "Carrier")
	}
}

func TestHandleSubmit_MissingPendingRedirectsToLogin(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fake := identity.NewFake()
	mail := &testutil.MailRecorder{}
	pending := pendingreg.New(db, 0)
	h := NewHandler(db, fake, mail, pending, "15 minutes", "/login", uierrors.NewErrorLogger(zap.NewNop()), zap.NewNop())

	const email = "late@acme.example"
	if _, err := fake.CreateAccount(ctx, email, "pw", true, nil); err != nil {
		t.Fatalf("CreateAccount: %v", err)
	}

	rec := postVerify(t, h, email, identity.FakeCode)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if loc := rec.Header().Get("Location"); loc != "/login" {
		t.Errorf("Location: got %q, want /login", loc)
	}
	if len(mail.Sent) != 0 {
		t.Errorf("no mail should be sent without a pending registration, got %d", len(mail.Sent))
	}
}

func TestHandleResend_SendsFreshCode(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fake := identity.NewFake()
	mail := &testutil.MailRecorder{}
	pending := pendingreg.New(db, 0)
	h := NewHandler(db, fake, mail, pending, "15 minutes", "/login", uierrors.NewErrorLogger(zap.NewNop()), zap.NewNop())

	const email = "pat@acme.example"
	if _, err := fake.CreateAccount(ctx, email, "pw", true, nil); err != nil {
		t.Fatalf("CreateAccount: %v", err)
	}

	form := url.Values{"email": {email}}
	req := httptest.NewRequest("POST", "/verify/resend", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.HandleResend(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if loc := rec.Header().Get("Location"); !strings.HasPrefix(loc, "/verify?resent=1") {
		t.Errorf("Location: got %q, want /verify?resent=1...", loc)
	}
	if len(mail.Sent) != 1 || !strings.Contains(mail.Sent[0].Body, identity.FakeCode) {
		t.Errorf("resend email should carry the code, got %+v", mail.Sent)
	}
}
