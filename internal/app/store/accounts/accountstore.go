// internal/app/store/accounts/accountstore.go
package accountstore

import (
	"context"
	"errors"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/kirisuberu/connect2bulk/internal/app/system/normalize"
	"github.com/kirisuberu/connect2bulk/internal/domain/models"
)

type Store struct {
	c *mongo.Collection
}

var (
	ErrNotFound         = errors.New("account not found")
	ErrDuplicateAccount = errors.New("an account with this email already exists")
)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("accounts")}
}

func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email_ci", Value: 1}},
			Options: options.Index().SetName("idx_accounts_email_ci").SetUnique(true),
		},
	}
	_, err := s.c.Indexes().CreateMany(ctx, indexes)
	return err
}

func (s *Store) Create(ctx context.Context, a models.Account) (models.Account, error) {
	now := time.Now().UTC()
	a.ID = primitive.NewObjectID()
	a.EmailCI = normalize.Email(a.Email)
	if a.Status == "" {
		a.Status = models.AccountUnconfirmed
	}
	a.CreatedAt = now
	a.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, a); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Account{}, ErrDuplicateAccount
		}
		return models.Account{}, err
	}
	return a, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Account, error) {
	var a models.Account
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&a)
	if err == mongo.ErrNoDocuments {
		return models.Account{}, ErrNotFound
	}
	if err != nil {
		return models.Account{}, err
	}
	return a, nil
}

func (s *Store) GetByEmail(ctx context.Context, email string) (models.Account, error) {
	var a models.Account
	err := s.c.FindOne(ctx, bson.M{"email_ci": normalize.Email(email)}).Decode(&a)
	if err == mongo.ErrNoDocuments {
		return models.Account{}, ErrNotFound
	}
	if err != nil {
		return models.Account{}, err
	}
	return a, nil
}

// SetPassword replaces the credential. Setting a permanent password clears
// the temp-password and reset-required flags.
func (s *Store) SetPassword(ctx context.Context, id primitive.ObjectID, passwordHash string, temp bool) error {
	set := bson.M{
		"updated_at":     time.Now().UTC(),
		"password_hash":  passwordHash,
		"temp_password":  temp,
		"reset_required": false,
	}
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) SetStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"updated_at": time.Now().UTC(),
		"status":     status,
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// SetResetRequired flags the account so the next sign-in demands a password
// reset before completing.
func (s *Store) SetResetRequired(ctx context.Context, id primitive.ObjectID, required bool) error {
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"updated_at":     time.Now().UTC(),
		"reset_required": required,
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// SetAttributes merges the given profile attributes into the account; keys
// not present in attrs are left untouched.
func (s *Store) SetAttributes(ctx context.Context, id primitive.ObjectID, attrs map[string]string) error {
	if len(attrs) == 0 {
		return nil
	}
	set := bson.M{"updated_at": time.Now().UTC()}
	for k, v := range attrs {
		set["attributes."+k] = v
	}
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
