// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"
	"fmt"

	"github.com/dalemusser/waffle/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/kirisuberu/connect2bulk/internal/app/store/indexes"
	"github.com/kirisuberu/connect2bulk/internal/app/system/timeouts"
)

// ConnectDB opens the MongoDB client and verifies the connection.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	opts := options.Client().
		ApplyURI(appCfg.MongoURI).
		SetMaxPoolSize(appCfg.MongoMaxPoolSize).
		SetMinPoolSize(appCfg.MongoMinPoolSize)

	connectCtx, cancel := context.WithTimeout(ctx, timeouts.Long())
	defer cancel()

	client, err := mongo.Connect(connectCtx, opts)
	if err != nil {
		return DBDeps{}, fmt.Errorf("mongo connect: %w", err)
	}

	pingCtx, pingCancel := context.WithTimeout(ctx, timeouts.Ping())
	defer pingCancel()

	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return DBDeps{}, fmt.Errorf("mongo ping: %w", err)
	}

	logger.Info("connected to MongoDB",
		zap.String("database", appCfg.MongoDatabase))

	deps := DBDeps{
		MongoClient:   client,
		MongoDatabase: client.Database(appCfg.MongoDatabase),
	}

	// Without a dedicated guest URI the boards fall back on the primary
	// connection, so guest mode still works in single-credential setups.
	deps.GuestMongoClient = client
	deps.GuestMongoDatabase = deps.MongoDatabase

	if appCfg.MongoGuestURI != "" {
		guestClient, err := mongo.Connect(connectCtx, options.Client().ApplyURI(appCfg.MongoGuestURI))
		if err != nil {
			_ = client.Disconnect(context.Background())
			return DBDeps{}, fmt.Errorf("mongo guest connect: %w", err)
		}
		if err := guestClient.Ping(pingCtx, nil); err != nil {
			_ = guestClient.Disconnect(context.Background())
			_ = client.Disconnect(context.Background())
			return DBDeps{}, fmt.Errorf("mongo guest ping: %w", err)
		}
		logger.Info("connected guest MongoDB client")
		deps.GuestMongoClient = guestClient
		deps.GuestMongoDatabase = guestClient.Database(appCfg.MongoDatabase)
	}

	return deps, nil
}

// EnsureSchema creates the indexes every store relies on, including the
// unique firm/load/truck number constraints and the TTL indexes that
// expire verification codes and OAuth state.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if err := indexes.EnsureAll(ctx, deps.MongoDatabase); err != nil {
		return fmt.Errorf("ensure indexes: %w", err)
	}
	logger.Info("MongoDB indexes ensured")
	return nil
}
