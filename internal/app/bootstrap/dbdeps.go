// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"go.mongodb.org/mongo-driver/mongo"
)

// DBDeps holds database dependencies for the app.
//
// The guest client carries read-only credentials for the board fallback.
// When no guest URI is configured it aliases the primary client.
type DBDeps struct {
	MongoClient   *mongo.Client
	MongoDatabase *mongo.Database

	GuestMongoClient   *mongo.Client
	GuestMongoDatabase *mongo.Database
}
