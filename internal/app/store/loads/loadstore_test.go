package loadstore_test

import (
	"testing"
	"time"

	loadstore "github.com/kirisuberu/connect2bulk/internal/app/store/loads"
	"github.com/kirisuberu/connect2bulk/internal/domain/models"
	"github.com/kirisuberu/connect2bulk/internal/testutil"
)

func TestStore_CreateAndGetByLoadNumber(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := loadstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.Load{
		LoadNumber:   "LN-123456-0001",
		PickupDate:   "2026-09-01",
		DeliveryDate: "2026-09-03",
		Origin:       "Columbia, MO",
		Destination:  "Des Moines, IA",
		TrailerType:  "VAN",
		Miles:        240,
		Rate:         950,
		Frequency:    models.FrequencyOnce,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.ID.IsZero() {
		t.Fatal("expected generated ID")
	}

	got, err := store.GetByLoadNumber(ctx, "LN-123456-0001")
	if err != nil {
		t.Fatalf("GetByLoadNumber failed: %v", err)
	}
	if got.ID != created.ID {
		t.Errorf("got load %s, want %s", got.ID.Hex(), created.ID.Hex())
	}
}

func TestStore_GetByLoadNumber_NewestWinsOnCollision(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := loadstore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx.CreateLoad(ctx, "LN-111111-2222", time.Now().UTC().Add(-time.Hour))
	newer := fx.CreateLoad(ctx, "LN-111111-2222", time.Now().UTC())

	got, err := store.GetByLoadNumber(ctx, "LN-111111-2222")
	if err != nil {
		t.Fatalf("GetByLoadNumber failed: %v", err)
	}
	if got.ID != newer.ID {
		t.Errorf("got load %s, want the newer record %s", got.ID.Hex(), newer.ID.Hex())
	}
}

func TestStore_ListNewestFirst(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := loadstore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	base := time.Now().UTC()
	fx.CreateLoad(ctx, "LN-000001-0001", base.Add(-2*time.Hour))
	fx.CreateLoad(ctx, "LN-000002-0002", base)
	fx.CreateLoad(ctx, "LN-000003-0003", base.Add(-time.Hour))

	loads, err := store.ListNewestFirst(ctx, 0)
	if err != nil {
		t.Fatalf("ListNewestFirst failed: %v", err)
	}
	if len(loads) != 3 {
		t.Fatalf("len = %d, want 3", len(loads))
	}
	want := []string{"LN-000002-0002", "LN-000003-0003", "LN-000001-0001"}
	for i, w := range want {
		if loads[i].LoadNumber != w {
			t.Errorf("loads[%d].LoadNumber = %q, want %q", i, loads[i].LoadNumber, w)
		}
	}
}

func TestStore_ListNewestFirst_Limit(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := loadstore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	base := time.Now().UTC()
	for i := 0; i < 5; i++ {
		fx.CreateLoad(ctx, "LN-00000"+string(rune('1'+i))+"-0001", base.Add(-time.Duration(i)*time.Minute))
	}

	loads, err := store.ListNewestFirst(ctx, 2)
	if err != nil {
		t.Fatalf("ListNewestFirst failed: %v", err)
	}
	if len(loads) != 2 {
		t.Errorf("len = %d, want 2", len(loads))
	}
}

func TestStore_Update_KeepsLoadNumber(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := loadstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.Load{
		LoadNumber:   "LN-654321-0009",
		PickupDate:   "2026-09-01",
		DeliveryDate: "2026-09-03",
		Origin:       "Columbia, MO",
		Destination:  "Des Moines, IA",
		TrailerType:  "VAN",
		Frequency:    models.FrequencyOnce,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	created.Rate = 1200
	created.TrailerType = "REEFER"
	created.LoadNumber = "LN-999999-9999" // must be ignored
	if err := store.Update(ctx, created.ID, created); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	got, err := store.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Rate != 1200 || got.TrailerType != "REEFER" {
		t.Errorf("update not applied: rate=%v trailer=%q", got.Rate, got.TrailerType)
	}
	if got.LoadNumber != "LN-654321-0009" {
		t.Errorf("LoadNumber = %q, want original number preserved", got.LoadNumber)
	}
}

func TestStore_Delete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := loadstore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	load := fx.CreateLoad(ctx, "LN-123123-1231", time.Now().UTC())

	n, err := store.Delete(ctx, load.ID)
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if n != 1 {
		t.Errorf("deleted = %d, want 1", n)
	}
	if _, err := store.GetByID(ctx, load.ID); err != loadstore.ErrNotFound {
		t.Errorf("err after delete = %v, want ErrNotFound", err)
	}
}
