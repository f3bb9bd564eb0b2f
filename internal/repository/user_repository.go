package repository

import (
	"context"

	"gorm.io/gorm"

	"uptask/internal/model"
)

// UserRepository defines user persistence operations.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	Update(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByToken(ctx context.Context, token string) (*model.User, error)
	FindSummaries(ctx context.Context, ids []string) ([]model.UserSummary, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository builds a GORM-backed repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return translateGormError(r.db.WithContext(ctx).Create(user).Error)
}

func (r *userRepository) Update(ctx context.Context, user *model.User) error {
	return updateExisting(ctx, r.db, user, &model.User{}, user.ID)
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, translateGormError(err)
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, translateGormError(err)
	}
	return &user, nil
}

func (r *userRepository) FindByToken(ctx context.Context, token string) (*model.User, error) {
	var user model.User
	if token == "" {
		return nil, ErrNotFound
	}
	if err := r.db.WithContext(ctx).Where("token = ?", token).First(&user).Error; err != nil {
		return nil, translateGormError(err)
	}
	return &user, nil
}

// FindSummaries loads the redacted projection of the given users.
func (r *userRepository) FindSummaries(ctx context.Context, ids []string) ([]model.UserSummary, error) {
	summaries := []model.UserSummary{}
	if len(ids) == 0 {
		return summaries, nil
	}
	if err := r.db.WithContext(ctx).Model(&model.User{}).
		Select("id", "nombre", "email").
		Where("id IN ?", ids).
		Find(&summaries).Error; err != nil {
		return nil, translateGormError(err)
	}
	return summaries, nil
}
