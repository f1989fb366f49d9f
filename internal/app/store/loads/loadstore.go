// internal/app/store/loads/loadstore.go
package loadstore

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

type Store struct {
	c *mongo.Collection
}

var ErrNotFound = errors.New("load not found")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("loads")}
}

func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "load_number", Value: 1}},
			Options: options.Index().SetName("idx_loads_number"),
		},
		{
			Keys:    bson.D{{Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_loads_created"),
		},
	}
	_, err := s.c.Indexes().CreateMany(ctx, indexes)
	return err
}

func (s *Store) Create(ctx context.Context, load models.Load) (models.Load, error) {
	now := time.Now().UTC()
	load.ID = primitive.NewObjectID()
	load.CreatedAt = now
	load.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, load); err != nil {
		return models.Load{}, err
	}
	return load, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Load, error) {
	var load models.Load
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&load)
	if err == mongo.ErrNoDocuments {
		return models.Load{}, ErrNotFound
	}
	if err != nil {
		return models.Load{}, err
	}
	return load, nil
}

// GetByLoadNumber returns the most recent load carrying the given number.
// Load numbers are client-generated and collisions, while unlikely, are
// possible; the newest record wins.
func (s *Store) GetByLoadNumber(ctx context.Context, loadNumber string) (models.Load, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})
	var load models.Load
	err := s.c.FindOne(ctx, bson.M{"load_number": loadNumber}, opts).Decode(&load)
	if err == mongo.ErrNoDocuments {
		return models.Load{}, ErrNotFound
	}
	if err != nil {
		return models.Load{}, err
	}
	return load, nil
}

// ListNewestFirst returns up to limit loads ordered by creation time
// descending. limit <= 0 means no limit.
func (s *Store) ListNewestFirst(ctx context.Context, limit int64) ([]models.Load, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var loads []models.Load
	if err := cur.All(ctx, &loads); err != nil {
		return nil, err
	}
	return loads, nil
}

// Update replaces the load's mutable fields and refreshes UpdatedAt. The load
// number is permanent once assigned.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, load models.Load) error {
	set := bson.M{
		"updated_at":            time.Now().UTC(),
		"pickup_date":           load.PickupDate,
		"delivery_date":         load.DeliveryDate,
		"origin":                load.Origin,
		"destination":           load.Destination,
		"trailer_type":          load.TrailerType,
		"equipment_requirement": load.EquipmentRequirement,
		"miles":                 load.Miles,
		"rate":                  load.Rate,
		"frequency":             load.Frequency,
		"comment":               load.Comment,
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

func (s *Store) Find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.Load, error) {
	cur, err := s.c.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var loads []models.Load
	if err := cur.All(ctx, &loads); err != nil {
		return nil, err
	}
	return loads, nil
}

func (s *Store) Count(ctx context.Context, filter bson.M) (int64, error) {
	return s.c.CountDocuments(ctx, filter)
}
