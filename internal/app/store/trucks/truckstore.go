// internal/app/store/trucks/truckstore.go
package truckstore

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

var ErrNotFound = errors.New("truck posting not found")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("trucks")}
}

func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "truck_number", Value: 1}},
			Options: options.Index().SetName("idx_trucks_number"),
		},
		{
			Keys:    bson.D{{Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_trucks_created"),
		},
	}
	_, err := s.c.Indexes().CreateMany(ctx, indexes)
	return err
}

func (s *Store) Create(ctx context.Context, truck models.Truck) (models.Truck, error) {
	now := time.Now().UTC()
	truck.ID = primitive.NewObjectID()
	truck.CreatedAt = now
	truck.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, truck); err != nil {
		return models.Truck{}, err
	}
	return truck, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Truck, error) {
	var truck models.Truck
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&truck)
	if err == mongo.ErrNoDocuments {
		return models.Truck{}, ErrNotFound
	}
	if err != nil {
		return models.Truck{}, err
	}
	return truck, nil
}

// GetByTruckNumber returns the most recent posting carrying the given
// number. Truck numbers are client-generated; on a collision the newest
// record wins.
func (s *Store) GetByTruckNumber(ctx context.Context, truckNumber string) (models.Truck, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})
	var truck models.Truck
	err := s.c.FindOne(ctx, bson.M{"truck_number": truckNumber}, opts).Decode(&truck)
	if err == mongo.ErrNoDocuments {
		return models.Truck{}, ErrNotFound
	}
	if err != nil {
		return models.Truck{}, err
	}
	return truck, nil
}

// ListNewestFirst returns up to limit truck postings ordered by creation time
// descending. limit <= 0 means no limit.
func (s *Store) ListNewestFirst(ctx context.Context, limit int64) ([]models.Truck, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var trucks []models.Truck
	if err := cur.All(ctx, &trucks); err != nil {
		return nil, err
	}
	return trucks, nil
}

func (s *Store) Update(ctx context.Context, id primitive.ObjectID, truck models.Truck) error {
	set := bson.M{
		"updated_at":     time.Now().UTC(),
		"truck_number":   truck.TruckNumber,
		"available_date": truck.AvailableDate,
		"origin":         truck.Origin,
		"destination":    truck.Destination,
		"trailer_type":   truck.TrailerType,
		"comment":        truck.Comment,
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

func (s *Store) Find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.Truck, error) {
	cur, err := s.c.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var trucks []models.Truck
	if err := cur.All(ctx, &trucks); err != nil {
		return nil, err
	}
	return trucks, nil
}

func (s *Store) Count(ctx context.Context, filter bson.M) (int64, error) {
	return s.c.CountDocuments(ctx, filter)
}
