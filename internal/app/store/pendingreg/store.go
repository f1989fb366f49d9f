// internal/app/store/pendingreg/store.go
package pendingreg

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/kirisuberu/connect2bulk/internal/domain/models"
)

// DefaultExpiry is how long an unverified registration is held before the
// TTL sweep discards it.
const DefaultExpiry = 24 * time.Hour

var ErrNotFound = errors.New("pending registration not found or expired")

// Store holds firm registrations between form submission and email
// verification.
type Store struct {
	c      *mongo.Collection
	expiry time.Duration
}

func New(db *mongo.Database, expiry time.Duration) *Store {
	if expiry <= 0 {
		expiry = DefaultExpiry
	}
	return &Store{
		c:      db.Collection("pending_registrations"),
		expiry: expiry,
	}
}

func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email_ci", Value: 1}},
			Options: options.Index().SetName("idx_pendingreg_email"),
		},
		{
			Keys:    bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().SetName("idx_pendingreg_expires_ttl").SetExpireAfterSeconds(0),
		},
	}
	_, err := s.c.Indexes().CreateMany(ctx, indexes)
	return err
}

// Put stores the registration payload for the email, replacing any earlier
// unverified submission for the same address.
func (s *Store) Put(ctx context.Context, reg models.PendingRegistration) (models.PendingRegistration, error) {
	now := time.Now().UTC()
	reg.ID = primitive.NewObjectID()
	reg.CreatedAt = now
	reg.ExpiresAt = now.Add(s.expiry)

	_, _ = s.c.DeleteMany(ctx, bson.M{"email_ci": reg.EmailCI})
	if _, err := s.c.InsertOne(ctx, reg); err != nil {
		return models.PendingRegistration{}, err
	}
	return reg, nil
}

// Get returns the unexpired registration for the email without consuming it.
func (s *Store) Get(ctx context.Context, emailCI string) (models.PendingRegistration, error) {
	var reg models.PendingRegistration
	err := s.c.FindOne(ctx, bson.M{
		"email_ci":   emailCI,
		"expires_at": bson.M{"$gt": time.Now().UTC()},
	}).Decode(&reg)
	if err == mongo.ErrNoDocuments {
		return models.PendingRegistration{}, ErrNotFound
	}
	if err != nil {
		return models.PendingRegistration{}, err
	}
	return reg, nil
}

// Consume atomically fetches and deletes the registration for the email, so
// a verification completes at most once even under concurrent submissions.
func (s *Store) Consume(ctx context.Context, emailCI string) (models.PendingRegistration, error) {
	var reg models.PendingRegistration
	err := s.c.FindOneAndDelete(ctx, bson.M{
		"email_ci":   emailCI,
		"expires_at": bson.M{"$gt": time.Now().UTC()},
	}).Decode(&reg)
	if err == mongo.ErrNoDocuments {
		return models.PendingRegistration{}, ErrNotFound
	}
	if err != nil {
		return models.PendingRegistration{}, err
	}
	return reg, nil
}

// Delete discards any pending registration for the email.
func (s *Store) Delete(ctx context.Context, emailCI string) error {
	_, err := s.c.DeleteMany(ctx, bson.M{"email_ci": emailCI})
	return err
}
