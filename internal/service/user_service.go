package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"uptask/internal/cache"
	apperrors "uptask/internal/errors"
	"uptask/internal/logging"
	"uptask/internal/mail"
	"uptask/internal/model"
	"uptask/internal/repository"
)

const (
	bcryptCost   = 10
	userCacheTTL = 5 * time.Minute
)

// RegisterInput is the data needed to open an account.
type RegisterInput struct {
	Nombre   string
	Email    string
	Password string
}

// UserService handles account lifecycle: registration, confirmation and
// password recovery. It also resolves authenticated callers.
type UserService interface {
	Register(ctx context.Context, input RegisterInput) error
	Confirm(ctx context.Context, token string) error
	ForgotPassword(ctx context.Context, email string) error
	CheckResetToken(ctx context.Context, token string) error
	ResetPassword(ctx context.Context, token, password string) error
	GetUser(ctx context.Context, id string) (*model.UserSummary, error)
}

type userService struct {
	repo     repository.UserRepository
	cache    *cache.Client
	mailer   mail.Sender
	newToken func() string
}

// NewUserService builds a UserService. cache may be nil.
func NewUserService(repo repository.UserRepository, cache *cache.Client, mailer mail.Sender, newToken func() string) UserService {
	return &userService{repo: repo, cache: cache, mailer: mailer, newToken: newToken}
}

func (s *userService) cacheKey(id string) string {
	return "user:" + id
}

// Register stores an unconfirmed account and mails its confirmation link.
// A mail failure is logged; the account is already saved.
func (s *userService) Register(ctx context.Context, input RegisterInput) error {
	_, err := s.repo.FindByEmail(ctx, input.Email)
	if err == nil {
		return apperrors.ErrUserAlreadyExists
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("check user existence: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Nombre:   input.Nombre,
		Email:    input.Email,
		Password: string(hashed),
		Token:    s.newToken(),
	}
	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return apperrors.ErrUserAlreadyExists
		}
		return fmt.Errorf("create user: %w", err)
	}

	if err := s.mailer.SendConfirmation(ctx, recipient(user)); err != nil {
		logging.FromContext(ctx).Warn("confirmation email failed", zap.String("user_id", user.ID), zap.Error(err))
	}
	return nil
}

// Confirm marks the account holding token as confirmed and spends the token.
func (s *userService) Confirm(ctx context.Context, token string) error {
	user, err := s.repo.FindByToken(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.ErrInvalidConfirmation
		}
		return fmt.Errorf("find user by token: %w", err)
	}

	user.Confirmado = true
	user.Token = ""
	return s.save(ctx, user)
}

// ForgotPassword issues a fresh reset token and mails it.
func (s *userService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("find user: %w", err)
	}

	user.Token = s.newToken()
	if err := s.save(ctx, user); err != nil {
		return err
	}

	if err := s.mailer.SendPasswordReset(ctx, recipient(user)); err != nil {
		logging.FromContext(ctx).Warn("password reset email failed", zap.String("user_id", user.ID), zap.Error(err))
	}
	return nil
}

// CheckResetToken reports whether token belongs to an account.
func (s *userService) CheckResetToken(ctx context.Context, token string) error {
	_, err := s.userByToken(ctx, token)
	return err
}

// ResetPassword replaces the password of the account holding token.
func (s *userService) ResetPassword(ctx context.Context, token, password string) error {
	user, err := s.userByToken(ctx, token)
	if err != nil {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user.Password = string(hashed)
	user.Token = ""
	return s.save(ctx, user)
}

// GetUser returns the redacted view of a user, served from Redis when
// possible.
func (s *userService) GetUser(ctx context.Context, id string) (*model.UserSummary, error) {
	var cached model.UserSummary
	if s.cache.GetJSON(ctx, s.cacheKey(id), &cached) {
		return &cached, nil
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	summary := user.Summary()
	s.cache.SetJSON(ctx, s.cacheKey(id), summary, userCacheTTL)
	return &summary, nil
}

func (s *userService) userByToken(ctx context.Context, token string) (*model.User, error) {
	user, err := s.repo.FindByToken(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.ErrInvalidToken
		}
		return nil, fmt.Errorf("find user by token: %w", err)
	}
	return user, nil
}

func (s *userService) save(ctx context.Context, user *model.User) error {
	if err := s.repo.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("update user: %w", err)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(user.ID))
	return nil
}

func recipient(user *model.User) mail.Recipient {
	return mail.Recipient{Nombre: user.Nombre, Email: user.Email, Token: user.Token}
}
