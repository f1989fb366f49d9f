package identity_test

import (
	"testing"

	"go.uber.org/zap"

	"github.com/kirisuberu/connect2bulk/internal/app/store/emailverify"
	"github.com/kirisuberu/connect2bulk/internal/app/system/identity"
	"github.com/kirisuberu/connect2bulk/internal/testutil"
)

func TestMongoProvider_SignUpFlow(t *testing.T) {
	db := testutil.SetupTestDB(t)
	p := identity.NewMongoProvider(db, emailverify.New(db, 0), zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	code, err := p.CreateAccount(ctx, "Admin@Acme.example", "secret-pw", false, map[string]string{
		"given_name": "Pat",
	})
	if err != nil {
		t.Fatalf("CreateAccount failed: %v", err)
	}
	if code == "" {
		t.Fatal("expected a verification code")
	}

	step, err := p.SignIn(ctx, "admin@acme.example", "secret-pw")
	if err != nil || step != identity.StepConfirmSignUp {
		t.Fatalf("got (%v, %v), want (StepConfirmSignUp, nil)", step, err)
	}

	if err := p.ConfirmSignUp(ctx, "admin@acme.example", code); err != nil {
		t.Fatalf("ConfirmSignUp failed: %v", err)
	}

	step, err = p.SignIn(ctx, "ADMIN@acme.example", "secret-pw")
	if err != nil || step != identity.StepDone {
		t.Fatalf("got (%v, %v), want (StepDone, nil)", step, err)
	}
}

func TestMongoProvider_DuplicateAccount(t *testing.T) {
	db := testutil.SetupTestDB(t)
	p := identity.NewMongoProvider(db, emailverify.New(db, 0), zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := p.CreateAccount(ctx, "dup@example.com", "pw", false, nil); err != nil {
		t.Fatalf("first CreateAccount failed: %v", err)
	}
	if _, err := p.CreateAccount(ctx, "DUP@example.com", "pw", false, nil); err != identity.ErrUserExists {
		t.Errorf("err = %v, want ErrUserExists", err)
	}
}

func TestMongoProvider_SignIn_WrongPassword(t *testing.T) {
	db := testutil.SetupTestDB(t)
	p := identity.NewMongoProvider(db, emailverify.New(db, 0), zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := p.CreateAccount(ctx, "user@example.com", "pw", false, nil); err != nil {
		t.Fatalf("CreateAccount failed: %v", err)
	}
	if _, err := p.SignIn(ctx, "user@example.com", "wrong"); err != identity.ErrNotAuthorized {
		t.Errorf("err = %v, want ErrNotAuthorized", err)
	}
	if _, err := p.SignIn(ctx, "nobody@example.com", "pw"); err != identity.ErrNotAuthorized {
		t.Errorf("unknown email err = %v, want ErrNotAuthorized", err)
	}
}

func TestMongoProvider_TempPasswordFlow(t *testing.T) {
	db := testutil.SetupTestDB(t)
	p := identity.NewMongoProvider(db, emailverify.New(db, 0), zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	temp := identity.GenerateTempPassword()
	if _, err := p.CreateAccount(ctx, "invitee@example.com", temp, true, nil); err != nil {
		t.Fatalf("CreateAccount failed: %v", err)
	}

	if err := p.CompleteNewPassword(ctx, "invitee@example.com", temp, "chosen-pw"); err != nil {
		t.Fatalf("CompleteNewPassword failed: %v", err)
	}

	// The invite flow confirms the account as a side effect.
	step, err := p.SignIn(ctx, "invitee@example.com", "chosen-pw")
	if err != nil || step != identity.StepDone {
		t.Fatalf("got (%v, %v), want (StepDone, nil)", step, err)
	}
}

func TestMongoProvider_PasswordReset(t *testing.T) {
	db := testutil.SetupTestDB(t)
	p := identity.NewMongoProvider(db, emailverify.New(db, 0), zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	code, err := p.CreateAccount(ctx, "user@example.com", "pw", false, nil)
	if err != nil {
		t.Fatalf("CreateAccount failed: %v", err)
	}
	if err := p.ConfirmSignUp(ctx, "user@example.com", code); err != nil {
		t.Fatalf("ConfirmSignUp failed: %v", err)
	}

	reset, err := p.RequestPasswordReset(ctx, "user@example.com")
	if err != nil || reset == "" {
		t.Fatalf("RequestPasswordReset = (%q, %v)", reset, err)
	}

	step, err := p.SignIn(ctx, "user@example.com", "pw")
	if err != nil || step != identity.StepResetRequired {
		t.Fatalf("got (%v, %v), want (StepResetRequired, nil)", step, err)
	}

	if err := p.ConfirmPasswordReset(ctx, "user@example.com", reset, "new-pw"); err != nil {
		t.Fatalf("ConfirmPasswordReset failed: %v", err)
	}
	step, err = p.SignIn(ctx, "user@example.com", "new-pw")
	if err != nil || step != identity.StepDone {
		t.Fatalf("got (%v, %v), want (StepDone, nil)", step, err)
	}
}

func TestMongoProvider_FetchAttributesIncludesEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	p := identity.NewMongoProvider(db, emailverify.New(db, 0), zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := p.CreateAccount(ctx, "user@example.com", "pw", false, map[string]string{"given_name": "Pat"}); err != nil {
		t.Fatalf("CreateAccount failed: %v", err)
	}

	attrs, err := p.FetchAttributes(ctx, "user@example.com")
	if err != nil {
		t.Fatalf("FetchAttributes failed: %v", err)
	}
	if attrs["given_name"] != "Pat" || attrs["email"] != "user@example.com" {
		t.Errorf("attrs = %v", attrs)
	}

	if err := p.UpdateAttributes(ctx, "user@example.com", map[string]string{"phone_number": "555-0100"}); err != nil {
		t.Fatalf("UpdateAttributes failed: %v", err)
	}
	attrs, err = p.FetchAttributes(ctx, "user@example.com")
	if err != nil {
		t.Fatalf("FetchAttributes failed: %v", err)
	}
	if attrs["phone_number"] != "555-0100" || attrs["given_name"] != "Pat" {
		t.Errorf("attrs after update = %v", attrs)
	}
}

func TestMongoProvider_ResetForUnknownEmailIsSilent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	p := identity.NewMongoProvider(db, emailverify.New(db, 0), zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	code, err := p.RequestPasswordReset(ctx, "nobody@example.com")
	if err != nil || code != "" {
		t.Errorf("got (%q, %v), want silent no-op", code, err)
	}
}
