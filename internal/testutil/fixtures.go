package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/kirisuberu/connect2bulk/internal/app/system/normalize"
	"github.com/kirisuberu/connect2bulk/internal/domain/models"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateFirm creates a test firm administered by the given email.
func (f *Fixtures) CreateFirm(ctx context.Context, name, adminEmail string) models.Firm {
	f.t.Helper()

	now := time.Now().UTC()
	firm := models.Firm{
		ID:                   primitive.NewObjectID(),
		FirmName:             name,
		AdministratorEmail:   adminEmail,
		AdministratorEmailCI: text.Fold(adminEmail),
		FirmType:             models.FirmTypeCarrier,
		State:                "MO",
		Zip:                  "65201",
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	if _, err := f.db.Collection("firms").InsertOne(ctx, firm); err != nil {
		f.t.Fatalf("failed to create test firm: %v", err)
	}
	return firm
}

// CreateLoad creates a test load posting with the given number and creation
// time. Older creation times let tests exercise newest-first ordering.
func (f *Fixtures) CreateLoad(ctx context.Context, loadNumber string, createdAt time.Time) models.Load {
	f.t.Helper()

	load := models.Load{
		ID:           primitive.NewObjectID(),
		LoadNumber:   loadNumber,
		PickupDate:   "2026-09-01",
		DeliveryDate: "2026-09-03",
		Origin:       "Columbia, MO",
		Destination:  "Des Moines, IA",
		TrailerType:  "VAN",
		Miles:        240,
		Rate:         950,
		Frequency:    models.FrequencyOnce,
		CreatedAt:    createdAt,
		UpdatedAt:    createdAt,
	}
	if _, err := f.db.Collection("loads").InsertOne(ctx, load); err != nil {
		f.t.Fatalf("failed to create test load: %v", err)
	}
	return load
}

// CreateTruck creates a test truck posting.
func (f *Fixtures) CreateTruck(ctx context.Context, truckNumber string, createdAt time.Time) models.Truck {
	f.t.Helper()

	truck := models.Truck{
		ID:            primitive.NewObjectID(),
		TruckNumber:   truckNumber,
		AvailableDate: "2026-09-01",
		Origin:        "Columbia, MO",
		TrailerType:   "REEFER",
		CreatedAt:     createdAt,
		UpdatedAt:     createdAt,
	}
	if _, err := f.db.Collection("trucks").InsertOne(ctx, truck); err != nil {
		f.t.Fatalf("failed to create test truck: %v", err)
	}
	return truck
}

// CreateUser creates a test directory entry.
func (f *Fixtures) CreateUser(ctx context.Context, firstName, lastName, email, role string) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	u := models.User{
		ID:        primitive.NewObjectID(),
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		EmailCI:   normalize.Email(email),
		Role:      normalize.Role(role),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := f.db.Collection("users").InsertOne(ctx, u); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return u
}

// CreateAccount creates a confirmed identity account with the given
// (pre-hashed) credential.
func (f *Fixtures) CreateAccount(ctx context.Context, email, passwordHash string) models.Account {
	f.t.Helper()

	now := time.Now().UTC()
	a := models.Account{
		ID:           primitive.NewObjectID(),
		Email:        email,
		EmailCI:      normalize.Email(email),
		PasswordHash: passwordHash,
		Status:       models.AccountConfirmed,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if _, err := f.db.Collection("accounts").InsertOne(ctx, a); err != nil {
		f.t.Fatalf("failed to create test account: %v", err)
	}
	return a
}
