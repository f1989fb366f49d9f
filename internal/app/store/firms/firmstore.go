// internal/app/store/firms/firmstore.go
package firmstore

import (
	"context"
	"errors"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/kirisuberu/connect2bulk/internal/domain/models"
)

type Store struct {
	c *mongo.Collection
}

var (
	ErrNotFound      = errors.New("firm not found")
	ErrDuplicateFirm = errors.New("a firm for this administrator email already exists")
)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("firms")}
}

// EnsureIndexes creates the administrator-email lookup indexes. Neither is
// unique: "one firm per administrator" is a client-side convention, and a
// unique index would break older mixed-case records that fold to the same
// value as a newer one.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "administrator_email_ci", Value: 1}},
			Options: options.Index().SetName("idx_firms_admin_email_ci"),
		},
		{
			Keys:    bson.D{{Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_firms_created"),
		},
	}
	_, err := s.c.Indexes().CreateMany(ctx, indexes)
	return err
}

func (s *Store) Create(ctx context.Context, firm models.Firm) (models.Firm, error) {
	now := time.Now().UTC()
	firm.ID = primitive.NewObjectID()
	firm.AdministratorEmailCI = text.Fold(firm.AdministratorEmail)
	firm.CreatedAt = now
	firm.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, firm); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Firm{}, ErrDuplicateFirm
		}
		return models.Firm{}, err
	}
	return firm, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Firm, error) {
	var firm models.Firm
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&firm)
	if err == mongo.ErrNoDocuments {
		return models.Firm{}, ErrNotFound
	}
	if err != nil {
		return models.Firm{}, err
	}
	return firm, nil
}

// FindByAdminEmailCI looks up the firm whose administrator email folds to the
// given value.
func (s *Store) FindByAdminEmailCI(ctx context.Context, emailCI string) (models.Firm, error) {
	var firm models.Firm
	err := s.c.FindOne(ctx, bson.M{"administrator_email_ci": emailCI}).Decode(&firm)
	if err == mongo.ErrNoDocuments {
		return models.Firm{}, ErrNotFound
	}
	if err != nil {
		return models.Firm{}, err
	}
	return firm, nil
}

// FindByAdminEmailRaw looks up the firm by the administrator email exactly as
// stored, for records written before folding was introduced.
func (s *Store) FindByAdminEmailRaw(ctx context.Context, email string) (models.Firm, error) {
	var firm models.Firm
	err := s.c.FindOne(ctx, bson.M{"administrator_email": email}).Decode(&firm)
	if err == mongo.ErrNoDocuments {
		return models.Firm{}, ErrNotFound
	}
	if err != nil {
		return models.Firm{}, err
	}
	return firm, nil
}

// Update replaces the firm's mutable fields and refreshes UpdatedAt. The
// administrator email is part of the firm's identity and is not changed here.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, firm models.Firm) error {
	set := bson.M{
		"updated_at":               time.Now().UTC(),
		"firm_name":                firm.FirmName,
		"firm_type":                firm.FirmType,
		"administrator_first_name": firm.AdministratorFirstName,
		"administrator_last_name":  firm.AdministratorLastName,
		"street":                   firm.Street,
		"city":                     firm.City,
		"state":                    firm.State,
		"zip":                      firm.Zip,
		"country":                  firm.Country,
		"dot":                      firm.DOT,
		"mc":                       firm.MC,
		"ein":                      firm.EIN,
		"phone":                    firm.Phone,
		"website":                  firm.Website,
		"insurance_provider":       firm.InsuranceProvider,
		"policy_number":            firm.PolicyNumber,
		"policy_expiry":            firm.PolicyExpiry,
		"w9_on_file":               firm.W9OnFile,
		"brand_color":              firm.BrandColor,
		"notes":                    firm.Notes,
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

// IncrementPostCounts bumps the firm's posting counters. Negative deltas are
// allowed for deletions.
func (s *Store) IncrementPostCounts(ctx context.Context, id primitive.ObjectID, loadDelta, truckDelta int) error {
	inc := bson.M{}
	if loadDelta != 0 {
		inc["load_posts"] = loadDelta
	}
	if truckDelta != 0 {
		inc["truck_posts"] = truckDelta
	}
	if len(inc) == 0 {
		return nil
	}
	_, err := s.c.UpdateByID(ctx, id, bson.M{"$inc": inc})
	return err
}

func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// Find returns firms matching the filter. The caller builds the filter and
// options (pagination, sorting, projection).
func (s *Store) Find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.Firm, error) {
	cur, err := s.c.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var firms []models.Firm
	if err := cur.All(ctx, &firms); err != nil {
		return nil, err
	}
	return firms, nil
}

func (s *Store) Count(ctx context.Context, filter bson.M) (int64, error) {
	return s.c.CountDocuments(ctx, filter)
}
