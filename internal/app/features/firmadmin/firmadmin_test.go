package firmadmin

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	uierrors "github.com/kirisuberu/connect2bulk/internal/app/features/errors"
	"github.com/kirisuberu/connect2bulk/internal/app/store/firms"
	"github.com/kirisuberu/connect2bulk/internal/app/system/auth"
	"github.com/kirisuberu/connect2bulk/internal/app/system/firmresolve"
	"github.com/kirisuberu/connect2bulk/internal/app/system/reconcile"
	"github.com/kirisuberu/connect2bulk/internal/testutil"
)

func validFirmForm() url.Values {
	return url.Values{
		"firm_name":  {"Acme Hauling"},
		"firm_type":  {"Carrier"},
		"first_name": {"Pat"},
		"last_name":  {"Jones"},
		"street":     {"100 Main St"},
		"city":       {"Columbia"},
		"state":      {"MO"},
		"zip":        {"65201"},
		"dot":        {"1234567"},
		"mc":         {"MC-987654"},
		"notes":      {"<p>Family owned since 1984</p><script>alert(1)</script>"},
	}
}

func formRequest(form url.Values) *http.Request {
	req := httptest.NewRequest("POST", "/admin", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestParseFirmForm_SanitizesNotes(t *testing.T) {
	firm, msg := parseFirmForm(formRequest(validFirmForm()))
	if msg != "" {
		t.Fatalf("valid form rejected: %q", msg)
	}
	if strings.Contains(firm.Notes, "<script>") {
		t.Errorf("notes should be sanitized, got %q", firm.Notes)
	}
	if !strings.Contains(firm.Notes, "Family owned") {
		t.Errorf("sanitizing should keep the text content, got %q", firm.Notes)
	}
}

func TestParseFirmForm_CollectsAllProblems(t *testing.T) {
	form := validFirmForm()
	form.Set("firm_name", "")
	form.Set("firm_type", "Freighter")
	form.Set("zip", "12")
	_, msg := parseFirmForm(formRequest(form))
	for _, want := range []string{"Firm name", "firm type", "zip"} {
		if !strings.Contains(msg, want) {
			t.Errorf("message %q should mention %q", msg, want)
		}
	}
}

func newTestHandler(t *testing.T) (*Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	sm, err := auth.NewSessionManager("test-session-key-for-testing-only", "test-session", "", false, logger)
	if err != nil {
		t.Fatalf("NewSessionManager: %v", err)
	}
	resolver := firmresolve.New(firmstore.New(db), sm)
	resolver.ReconcileOpts = reconcile.Options{Attempts: 1, Delay: time.Millisecond}
	return NewHandler(db, resolver, uierrors.NewErrorLogger(logger), logger), testutil.NewFixtures(t, db)
}

func TestHandleSave_CreatesMissingFirm(t *testing.T) {
	h, _ := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	req := formRequest(validFirmForm())
	req = auth.WithTestUser(req, &auth.SessionUser{Email: "Pat@Acme.example", Role: "Admin"})
	rec := httptest.NewRecorder()

	h.HandleSave(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status: got %d, want %d (body: %s)", rec.Code, http.StatusSeeOther, rec.Body.String())
	}
	if loc := rec.Header().Get("Location"); loc != "/admin?saved=1" {
		t.Errorf("Location: got %q, want /admin?saved=1", loc)
	}

	firm, err := h.Resolver.Firms.FindByAdminEmailCI(ctx, "pat@acme.example")
	if err != nil {
		t.Fatalf("created firm not found by normalized email: %v", err)
	}
	if firm.FirmName != "Acme Hauling" || firm.AdministratorEmail != "pat@acme.example" {
		t.Errorf("stored firm: %q / %q", firm.FirmName, firm.AdministratorEmail)
	}
}

func TestHandleSave_UpdatesExistingFirm(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	firm := fx.CreateFirm(ctx, "Old Name", "pat@acme.example")

	form := validFirmForm()
	form.Set("id", firm.ID.Hex())
	form.Set("firm_name", "New Name LLC")
	req := formRequest(form)
	req = auth.WithTestUser(req, &auth.SessionUser{Email: "pat@acme.example", Role: "Admin"})
	rec := httptest.NewRecorder()

	h.HandleSave(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status: got %d, want %d (body: %s)", rec.Code, http.StatusSeeOther, rec.Body.String())
	}

	after, err := h.Resolver.Firms.GetByID(ctx, firm.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if after.FirmName != "New Name LLC" {
		t.Errorf("firm name after update: got %q", after.FirmName)
	}
	if after.AdministratorEmail != firm.AdministratorEmail {
		t.Errorf("administrator email must not change on update: got %q", after.AdministratorEmail)
	}
}
