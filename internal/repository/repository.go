// Package repository defines narrow per-entity persistence interfaces with
// GORM (MySQL) and MongoDB implementations. Both translate driver errors
// into ErrNotFound and ErrDuplicate so services never see driver types.
package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when no record matches.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a unique index rejects a write.
	ErrDuplicate = errors.New("duplicate record")
)

// Collection names of the Mongo store.
const (
	UsersCollection    = "usuarios"
	ProjectsCollection = "proyectos"
	TasksCollection    = "tareas"
)

// Repositories groups the stores a service graph needs.
type Repositories struct {
	Users    UserRepository
	Projects ProjectRepository
	Tasks    TaskRepository
}

func translateGormError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	}
	return err
}

// updateExisting writes every column of value except created_at. It never
// inserts: a row deleted in the meantime yields ErrNotFound. MySQL reports
// changed rather than matched rows, so a write that affects nothing is
// followed by an existence check on empty, a zero value of the model.
func updateExisting(ctx context.Context, db *gorm.DB, value, empty interface{}, id string) error {
	res := db.WithContext(ctx).Model(value).Select("*").Omit("created_at").Updates(value)
	if res.Error != nil {
		return translateGormError(res.Error)
	}
	if res.RowsAffected > 0 {
		return nil
	}
	var count int64
	if err := db.WithContext(ctx).Model(empty).Where("id = ?", id).Count(&count).Error; err != nil {
		return translateGormError(err)
	}
	if count == 0 {
		return ErrNotFound
	}
	return nil
}

func translateMongoError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return ErrDuplicate
	}
	return err
}

// NewGormRepositories wires the GORM implementations.
func NewGormRepositories(db *gorm.DB) Repositories {
	return Repositories{
		Users:    NewUserRepository(db),
		Projects: NewProjectRepository(db),
		Tasks:    NewTaskRepository(db),
	}
}

// NewMongoRepositories wires the MongoDB implementations.
func NewMongoRepositories(db *mongo.Database) Repositories {
	return Repositories{
		Users:    NewMongoUserRepository(db),
		Projects: NewMongoProjectRepository(db),
		Tasks:    NewMongoTaskRepository(db),
	}
}
