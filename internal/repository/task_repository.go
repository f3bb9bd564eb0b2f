package repository

import (
	"context"

	"gorm.io/gorm"

	"uptask/internal/model"
)

// TaskRepository defines task persistence operations.
type TaskRepository interface {
	Create(ctx context.Context, task *model.Task) error
	Update(ctx context.Context, task *model.Task) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*model.Task, error)
	ListByProject(ctx context.Context, projectID string) ([]model.Task, error)
	DeleteByProject(ctx context.Context, projectID string) error
}

type taskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new task repository.
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &taskRepository{db: db}
}

// Create creates a new task.
func (r *taskRepository) Create(ctx context.Context, task *model.Task) error {
	return translateGormError(r.db.WithContext(ctx).Create(task).Error)
}

// Update writes every field of an existing task.
func (r *taskRepository) Update(ctx context.Context, task *model.Task) error {
	return updateExisting(ctx, r.db, task, &model.Task{}, task.ID)
}

// Delete removes a task by ID.
func (r *taskRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&model.Task{}, "id = ?", id)
	if res.Error != nil {
		return translateGormError(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// FindByID finds a task by ID.
func (r *taskRepository) FindByID(ctx context.Context, id string) (*model.Task, error) {
	var task model.Task
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&task).Error; err != nil {
		return nil, translateGormError(err)
	}
	return &task, nil
}

// ListByProject lists the tasks of a project.
func (r *taskRepository) ListByProject(ctx context.Context, projectID string) ([]model.Task, error) {
	tasks := []model.Task{}
	if err := r.db.WithContext(ctx).Where("proyecto = ?", projectID).Find(&tasks).Error; err != nil {
		return nil, translateGormError(err)
	}
	return tasks, nil
}

// DeleteByProject removes every task of a project.
func (r *taskRepository) DeleteByProject(ctx context.Context, projectID string) error {
	return translateGormError(r.db.WithContext(ctx).Where("proyecto = ?", projectID).Delete(&model.Task{}).Error)
}
