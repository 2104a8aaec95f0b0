// Package mongo implements the persistence layer on top of the MongoDB
// document store.
package mongo

import (
	"context"
	"log/slog"
	"time"

	"riptide/config"
	"riptide/internal/domain/constants"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/fx"
)

const connectTimeout = 10 * time.Second

// Params holds dependencies for the database handle, injected by Fx.
type Params struct {
	fx.In
	fx.Lifecycle

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// New connects to MongoDB, bootstraps the unique indexes and registers a
// disconnect hook on shutdown.
func New(params Params) (*mongo.Database, error) {
	ctx, cancel := context.WithTimeout(params.Ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(params.Config.DB.URL))
	if err != nil {
		return nil, errors.Wrap(err, "connect to mongo")
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, errors.Wrap(err, "ping mongo")
	}

	db := client.Database(params.Config.DB.Name)

	if err := ensureIndexes(ctx, db); err != nil {
		return nil, err
	}

	params.Logger.Info("Connected to MongoDB",
		slog.String("database", params.Config.DB.Name),
	)

	params.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			params.Logger.Info("Disconnecting from MongoDB")

			return errors.WithStack(client.Disconnect(ctx))
		},
	})

	return db, nil
}

// ensureIndexes creates the unique indexes that let inserts enforce
// uniqueness without a separate existence check.
func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	unique := options.Index().SetUnique(true)

	if _, err := db.Collection(constants.CollectionUsers).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: unique,
	}); err != nil {
		return errors.Wrap(err, "create username index")
	}

	if _, err := db.Collection(constants.CollectionDeviceTokens).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}},
		Options: unique,
	}); err != nil {
		return errors.Wrap(err, "create device token index")
	}

	for _, collection := range []string{constants.CollectionHistories, constants.CollectionNotifications} {
		if _, err := db.Collection(collection).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
		}); err != nil {
			return errors.Wrapf(err, "create %s index", collection)
		}
	}

	return nil
}
