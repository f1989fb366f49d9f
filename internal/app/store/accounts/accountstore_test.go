package accountstore_test

import (
	"testing"

	accountstore "github.com/kirisuberu/connect2bulk/internal/app/store/accounts"
	"github.com/kirisuberu/connect2bulk/internal/domain/models"
	"github.com/kirisuberu/connect2bulk/internal/testutil"
)

func TestStore_Create_DefaultsToUnconfirmed(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := accountstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.Account{
		Email:        "New@Example.com",
		PasswordHash: "hash",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.Status != models.AccountUnconfirmed {
		t.Errorf("Status = %q, want unconfirmed", created.Status)
	}
	if created.EmailCI != "new@example.com" {
		t.Errorf("EmailCI = %q, want lower-cased", created.EmailCI)
	}
}

func TestStore_Create_Duplicate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := accountstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Create(ctx, models.Account{Email: "dup@example.com", PasswordHash: "h"}); err != nil {
		t.Fatalf("first Create failed: %v", err)
	}
	_, err := store.Create(ctx, models.Account{Email: "DUP@example.com", PasswordHash: "h"})
	if err != accountstore.ErrDuplicateAccount {
		t.Errorf("err = %v, want ErrDuplicateAccount", err)
	}
}

func TestStore_GetByEmail_CaseInsensitive(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := accountstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.Account{Email: "user@example.com", PasswordHash: "h"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := store.GetByEmail(ctx, "USER@EXAMPLE.COM")
	if err != nil {
		t.Fatalf("GetByEmail failed: %v", err)
	}
	if got.ID != created.ID {
		t.Errorf("got account %s, want %s", got.ID.Hex(), created.ID.Hex())
	}
}

func TestStore_SetPassword_ClearsTempFlags(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := accountstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.Account{
		Email:         "user@example.com",
		PasswordHash:  "temp-hash",
		TempPassword:  true,
		ResetRequired: true,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := store.SetPassword(ctx, created.ID, "permanent-hash", false); err != nil {
		t.Fatalf("SetPassword failed: %v", err)
	}

	got, err := store.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.PasswordHash != "permanent-hash" {
		t.Errorf("PasswordHash = %q, want replaced", got.PasswordHash)
	}
	if got.TempPassword || got.ResetRequired {
		t.Errorf("flags = (%v, %v), want both cleared", got.TempPassword, got.ResetRequired)
	}
}

func TestStore_SetStatus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := accountstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.Account{Email: "user@example.com", PasswordHash: "h"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := store.SetStatus(ctx, created.ID, models.AccountConfirmed); err != nil {
		t.Fatalf("SetStatus failed: %v", err)
	}
	got, err := store.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Status != models.AccountConfirmed {
		t.Errorf("Status = %q, want confirmed", got.Status)
	}
}

func TestStore_SetAttributes_Merges(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := accountstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.Account{
		Email:        "user@example.com",
		PasswordHash: "h",
		Attributes:   map[string]string{"given_name": "Pat", "family_name": "Jones"},
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	err = store.SetAttributes(ctx, created.ID, map[string]string{
		"given_name":   "Patricia",
		"phone_number": "555-0100",
	})
	if err != nil {
		t.Fatalf("SetAttributes failed: %v", err)
	}

	got, err := store.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Attributes["given_name"] != "Patricia" {
		t.Errorf("given_name = %q, want overwritten", got.Attributes["given_name"])
	}
	if got.Attributes["family_name"] != "Jones" {
		t.Errorf("family_name = %q, want untouched", got.Attributes["family_name"])
	}
	if got.Attributes["phone_number"] != "555-0100" {
		t.Errorf("phone_number = %q, want added", got.Attributes["phone_number"])
	}
}
