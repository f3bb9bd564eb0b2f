package db

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"uptask/internal/repository"
)

const connectTimeout = 10 * time.Second

// NewMongo connects to MongoDB and verifies the connection with a ping.
func NewMongo(ctx context.Context, uri, database string) (*mongo.Client, *mongo.Database, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("ping mongo: %w", err)
	}
	return client, client.Database(database), nil
}

// MigrateMongo ensures the indexes the repositories rely on. With reset it
// drops the collections first.
func MigrateMongo(ctx context.Context, database *mongo.Database, reset bool, log *zap.Logger) error {
	if reset {
		log.Warn("reset_db set, dropping collections")
		for _, name := range []string{repository.TasksCollection, repository.ProjectsCollection, repository.UsersCollection} {
			if err := database.Collection(name).Drop(ctx); err != nil {
				log.Warn("drop collection failed", zap.String("collection", name), zap.Error(err))
			}
		}
	}

	indexes := map[string][]mongo.IndexModel{
		repository.UsersCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "token", Value: 1}}},
		},
		repository.ProjectsCollection: {
			{Keys: bson.D{{Key: "creador", Value: 1}}},
		},
		repository.TasksCollection: {
			{Keys: bson.D{{Key: "proyecto", Value: 1}}},
		},
	}
	for name, models := range indexes {
		if _, err := database.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create indexes on %s: %w", name, err)
		}
	}
	return nil
}
