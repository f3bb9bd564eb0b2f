package repository

import (
	"context"

	"gorm.io/gorm"

	"uptask/internal/model"
)

// ProjectRepository defines project persistence operations.
type ProjectRepository interface {
	Create(ctx context.Context, project *model.Project) error
	Update(ctx context.Context, project *model.Project) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*model.Project, error)
	ListByCreator(ctx context.Context, creatorID string) ([]model.Project, error)
}

type projectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new project repository.
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{db: db}
}

// Create creates a new project.
func (r *projectRepository) Create(ctx context.Context, project *model.Project) error {
	return translateGormError(r.db.WithContext(ctx).Create(project).Error)
}

// Update writes every field of an existing project. It never inserts, so a
// project deleted concurrently stays deleted and ErrNotFound is returned.
func (r *projectRepository) Update(ctx context.Context, project *model.Project) error {
	return updateExisting(ctx, r.db, project, &model.Project{}, project.ID)
}

// Delete removes a project by ID.
func (r *projectRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&model.Project{}, "id = ?", id)
	if res.Error != nil {
		return translateGormError(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// FindByID finds a project by ID.
func (r *projectRepository) FindByID(ctx context.Context, id string) (*model.Project, error) {
	var project model.Project
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&project).Error; err != nil {
		return nil, translateGormError(err)
	}
	return &project, nil
}

// ListByCreator lists the projects owned by a user.
func (r *projectRepository) ListByCreator(ctx context.Context, creatorID string) ([]model.Project, error) {
	projects := []model.Project{}
	if err := r.db.WithContext(ctx).Where("creador = ?", creatorID).Find(&projects).Error; err != nil {
		return nil, translateGormError(err)
	}
	return projects, nil
}
