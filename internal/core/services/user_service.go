package services

import (
	"context"
	"errors"
	"log/slog"

	"gorm.io/gorm"

	"github.com/mfgroup730-cmyk/MF-Accounting-App/internal/adapters/persistence/models"
	"github.com/mfgroup730-cmyk/MF-Accounting-App/internal/adapters/persistence/repositories"
	"github.com/mfgroup730-cmyk/MF-Accounting-App/internal/core/domain"
	"github.com/mfgroup730-cmyk/MF-Accounting-App/internal/core/policy"
	"github.com/mfgroup730-cmyk/MF-Accounting-App/internal/pkg/password"
)

// UserService handles the admin-only account management surface.
type UserService struct {
	userRepo repositories.UserRepository
	wsRepo   repositories.WorkspaceRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo repositories.UserRepository, wsRepo repositories.WorkspaceRepository) *UserService {
	return &UserService{userRepo: userRepo, wsRepo: wsRepo}
}

// CreateUserInput represents input for creating a user from the admin
// panel.
type CreateUserInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// UpdateUserInput represents the mutable account fields. Empty fields
// are left unchanged.
type UpdateUserInput struct {
	Password string `json:"password"`
	Role     string `json:"role"`
}

// List returns a page of registered accounts.
func (s *UserService) List(ctx context.Context, sess domain.Session, offset, limit int) ([]*models.UserResponse, int64, error) {
	if !policy.CanPerform(sess, policy.ActionManageUsers, "") {
		return nil, 0, domain.ErrForbidden
	}
	users, total, err := s.userRepo.List(ctx, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	responses := make([]*models.UserResponse, len(users))
	for i, u := range users {
		responses[i] = u.ToResponse()
	}
	return responses, total, nil
}

// Create registers an account on a user's behalf, with the same
// validation as self-registration.
func (s *UserService) Create(ctx context.Context, sess domain.Session, input *CreateUserInput) (*models.UserResponse, error) {
	if !policy.CanPerform(sess, policy.ActionManageUsers, "") {
		return nil, domain.ErrForbidden
	}

	username := NormalizeUsername(input.Username)
	if len(username) < minUsernameLength {
		return nil, domain.ErrUsernameTooShort
	}
	if !password.Validate(input.Password) {
		return nil, domain.ErrPasswordTooWeak
	}
	role := domain.Role(input.Role)
	if !domain.ValidRole(role) {
		return nil, domain.ErrInvalidRole
	}

	exists, err := s.userRepo.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrUserAlreadyExists
	}

	hashed, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username: username,
		Password: hashed,
		Role:     string(role),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	if err := s.wsRepo.Save(ctx, username, domain.EmptyWorkspace()); err != nil {
		return nil, err
	}

	slog.Info("user created by admin", "username", username, "role", role, "admin", sess.Username)
	return user.ToResponse(), nil
}

// Update changes an account's role and/or resets its password.
func (s *UserService) Update(ctx context.Context, sess domain.Session, username string, input *UpdateUserInput) (*models.UserResponse, error) {
	if !policy.CanPerform(sess, policy.ActionManageUsers, "") {
		return nil, domain.ErrForbidden
	}

	username = NormalizeUsername(username)
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUsernameNotFound
		}
		return nil, err
	}

	if input.Role != "" {
		role := domain.Role(input.Role)
		if !domain.ValidRole(role) {
			return nil, domain.ErrInvalidRole
		}
		user.Role = string(role)
	}
	if input.Password != "" {
		if !password.Validate(input.Password) {
			return nil, domain.ErrPasswordTooWeak
		}
		hashed, err := password.Hash(input.Password)
		if err != nil {
			return nil, err
		}
		user.Password = hashed
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	slog.Info("user updated", "username", username, "admin", sess.Username)
	return user.ToResponse(), nil
}

// Delete removes an account. The caller cannot delete itself.
func (s *UserService) Delete(ctx context.Context, sess domain.Session, username string) error {
	if !policy.CanPerform(sess, policy.ActionManageUsers, "") {
		return domain.ErrForbidden
	}

	username = NormalizeUsername(username)
	if username == sess.Username {
		return domain.ErrInvalidInput
	}

	exists, err := s.userRepo.ExistsByUsername(ctx, username)
	if err != nil {
		return err
	}
	if !exists {
		return domain.ErrUsernameNotFound
	}

	if err := s.userRepo.Delete(ctx, username); err != nil {
		return err
	}
	slog.Info("user deleted", "username", username, "admin", sess.Username)
	return nil
}
