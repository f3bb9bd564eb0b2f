package db

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"uptask/internal/model"
)

// NewMySQL returns a connected GORM DB instance.
func NewMySQL(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("connect mysql: %w", err)
	}
	return db, nil
}

// MigrateMySQL creates or updates the schema. With reset it drops the
// tables first.
func MigrateMySQL(db *gorm.DB, reset bool, log *zap.Logger) error {
	tables := []interface{}{
		&model.Task{},
		&model.Project{},
		&model.User{},
	}

	if reset {
		log.Warn("reset_db set, dropping tables")
		for _, table := range tables {
			if err := db.Migrator().DropTable(table); err != nil {
				log.Warn("drop table failed", zap.Error(err))
			}
		}
	}

	if err := db.AutoMigrate(tables...); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return nil
}
