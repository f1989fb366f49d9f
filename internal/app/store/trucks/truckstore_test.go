package truckstore_test

import (
	"testing"
	"time"

	truckstore "github.com/kirisuberu/connect2bulk/internal/app/store/trucks"
	"github.com/kirisuberu/connect2bulk/internal/domain/models"
	"github.com/kirisuberu/connect2bulk/internal/testutil"
)

func TestStore_CreateAndList(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := truckstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.Truck{
		TruckNumber:   "T-100",
		AvailableDate: "2026-09-01",
		Origin:        "Columbia, MO",
		TrailerType:   "REEFER",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.ID.IsZero() {
		t.Fatal("expected generated ID")
	}

	trucks, err := store.ListNewestFirst(ctx, 0)
	if err != nil {
		t.Fatalf("ListNewestFirst failed: %v", err)
	}
	if len(trucks) != 1 || trucks[0].ID != created.ID {
		t.Errorf("list = %v, want the created posting", trucks)
	}
}

func TestStore_ListNewestFirst_Order(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := truckstore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	base := time.Now().UTC()
	fx.CreateTruck(ctx, "T-1", base.Add(-time.Hour))
	fx.CreateTruck(ctx, "T-2", base)

	trucks, err := store.ListNewestFirst(ctx, 0)
	if err != nil {
		t.Fatalf("ListNewestFirst failed: %v", err)
	}
	if len(trucks) != 2 || trucks[0].TruckNumber != "T-2" {
		t.Errorf("expected T-2 first, got %+v", trucks)
	}
}

func TestStore_UpdateAndDelete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := truckstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.Truck{
		TruckNumber:   "T-100",
		AvailableDate: "2026-09-01",
		Origin:        "Columbia, MO",
		TrailerType:   "VAN",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	created.Destination = "Des Moines, IA"
	created.TrailerType = "FLATBED"
	if err := store.Update(ctx, created.ID, created); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	got, err := store.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Destination != "Des Moines, IA" || got.TrailerType != "FLATBED" {
		t.Errorf("update not applied: %+v", got)
	}

	n, err := store.Delete(ctx, created.ID)
	if err != nil || n != 1 {
		t.Fatalf("Delete = (%d, %v), want (1, nil)", n, err)
	}
	if _, err := store.GetByID(ctx, created.ID); err != truckstore.ErrNotFound {
		t.Errorf("err after delete = %v, want ErrNotFound", err)
	}
}
