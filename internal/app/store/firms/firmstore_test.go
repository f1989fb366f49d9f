package firmstore_test

import (
	"testing"

	firmstore "github.com/kirisuberu/connect2bulk/internal/app/store/firms"
	"github.com/kirisuberu/connect2bulk/internal/domain/models"
	"github.com/kirisuberu/connect2bulk/internal/testutil"
)

func TestStore_CreateAndGetByID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := firmstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.Firm{
		FirmName:           "Acme Bulk",
		AdministratorEmail: "Admin@Acme.example",
		FirmType:           models.FirmTypeCarrier,
		State:              "MO",
		Zip:                "65201",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.ID.IsZero() {
		t.Fatal("expected generated ID")
	}
	if created.AdministratorEmailCI != "admin@acme.example" {
		t.Errorf("AdministratorEmailCI = %q, want folded email", created.AdministratorEmailCI)
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Error("expected timestamps to be set")
	}

	got, err := store.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.FirmName != "Acme Bulk" {
		t.Errorf("FirmName = %q, want Acme Bulk", got.FirmName)
	}
}

func TestStore_FindByAdminEmailCI(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := firmstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.Firm{
		FirmName:           "Acme Bulk",
		AdministratorEmail: "Admin@Acme.example",
		FirmType:           models.FirmTypeBroker,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := store.FindByAdminEmailCI(ctx, "admin@acme.example")
	if err != nil {
		t.Fatalf("FindByAdminEmailCI failed: %v", err)
	}
	if got.ID != created.ID {
		t.Errorf("got firm %s, want %s", got.ID.Hex(), created.ID.Hex())
	}
}

func TestStore_FindByAdminEmailRaw(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := firmstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	// Simulate a legacy record whose CI field was never written.
	fx := testutil.NewFixtures(t, db)
	firm := fx.CreateFirm(ctx, "Legacy Freight", "Mixed.Case@Example.com")

	got, err := store.FindByAdminEmailRaw(ctx, "Mixed.Case@Example.com")
	if err != nil {
		t.Fatalf("FindByAdminEmailRaw failed: %v", err)
	}
	if got.ID != firm.ID {
		t.Errorf("got firm %s, want %s", got.ID.Hex(), firm.ID.Hex())
	}
}

func TestStore_FindByAdminEmailCI_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := firmstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := store.FindByAdminEmailCI(ctx, "nobody@example.com")
	if err != firmstore.ErrNotFound {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestStore_Update(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := firmstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.Firm{
		FirmName:           "Acme Bulk",
		AdministratorEmail: "admin@acme.example",
		FirmType:           models.FirmTypeCarrier,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	created.FirmName = "Acme Bulk Logistics"
	created.DOT = "1234567"
	created.W9OnFile = true
	if err := store.Update(ctx, created.ID, created); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	got, err := store.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.FirmName != "Acme Bulk Logistics" {
		t.Errorf("FirmName = %q, want updated name", got.FirmName)
	}
	if got.DOT != "1234567" || !got.W9OnFile {
		t.Errorf("DOT/W9 not updated: %q %v", got.DOT, got.W9OnFile)
	}
	if got.AdministratorEmail != "admin@acme.example" {
		t.Errorf("administrator email changed to %q", got.AdministratorEmail)
	}
	if !got.UpdatedAt.After(got.CreatedAt) {
		t.Error("expected UpdatedAt to advance past CreatedAt")
	}
}

func TestStore_IncrementPostCounts(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := firmstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.Firm{
		FirmName:           "Acme Bulk",
		AdministratorEmail: "admin@acme.example",
		FirmType:           models.FirmTypeCarrier,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := store.IncrementPostCounts(ctx, created.ID, 2, 1); err != nil {
		t.Fatalf("IncrementPostCounts failed: %v", err)
	}
	if err := store.IncrementPostCounts(ctx, created.ID, -1, 0); err != nil {
		t.Fatalf("IncrementPostCounts (negative) failed: %v", err)
	}

	got, err := store.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.LoadPosts != 1 || got.TruckPosts != 1 {
		t.Errorf("counters = (%d, %d), want (1, 1)", got.LoadPosts, got.TruckPosts)
	}
}

func TestStore_Delete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := firmstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.Firm{
		FirmName:           "Acme Bulk",
		AdministratorEmail: "admin@acme.example",
		FirmType:           models.FirmTypeCarrier,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	n, err := store.Delete(ctx, created.ID)
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if n != 1 {
		t.Errorf("deleted = %d, want 1", n)
	}
	if _, err := store.GetByID(ctx, created.ID); err != firmstore.ErrNotFound {
		t.Errorf("err after delete = %v, want ErrNotFound", err)
	}
}
