package db

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"uptask/internal/config"
	"uptask/internal/repository"
)

// Open connects the configured store, brings its schema or indexes up to
// date and returns the repositories with a function that releases the
// connection.
func Open(ctx context.Context, cfg *config.Config, log *zap.Logger) (repository.Repositories, func(context.Context) error, error) {
	switch cfg.StoreDriver {
	case config.StoreMySQL:
		gormDB, err := NewMySQL(cfg.MySQLDSN)
		if err != nil {
			return repository.Repositories{}, nil, err
		}
		if err := MigrateMySQL(gormDB, cfg.ResetDB, log); err != nil {
			return repository.Repositories{}, nil, err
		}
		sqlDB, err := gormDB.DB()
		if err != nil {
			return repository.Repositories{}, nil, fmt.Errorf("mysql pool: %w", err)
		}
		closeFn := func(context.Context) error { return sqlDB.Close() }
		return repository.NewGormRepositories(gormDB), closeFn, nil

	case config.StoreMongo:
		client, database, err := NewMongo(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return repository.Repositories{}, nil, err
		}
		if err := MigrateMongo(ctx, database, cfg.ResetDB, log); err != nil {
			_ = client.Disconnect(ctx)
			return repository.Repositories{}, nil, err
		}
		return repository.NewMongoRepositories(database), client.Disconnect, nil
	}
	return repository.Repositories{}, nil, fmt.Errorf("unsupported store_driver %q", cfg.StoreDriver)
}
