package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"gorm.io/gorm"

	"github.com/mfgroup730-cmyk/MF-Accounting-App/internal/adapters/persistence/models"
	"github.com/mfgroup730-cmyk/MF-Accounting-App/internal/adapters/persistence/repositories"
	"github.com/mfgroup730-cmyk/MF-Accounting-App/internal/config"
	"github.com/mfgroup730-cmyk/MF-Accounting-App/internal/core/domain"
	"github.com/mfgroup730-cmyk/MF-Accounting-App/internal/pkg/jwt"
	"github.com/mfgroup730-cmyk/MF-Accounting-App/internal/pkg/password"
)

const minUsernameLength = 3

// AuthService handles registration and login
type AuthService struct {
	userRepo repositories.UserRepository
	wsRepo   repositories.WorkspaceRepository
	cfg      *config.Config
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo repositories.UserRepository,
	wsRepo repositories.WorkspaceRepository,
	cfg *config.Config,
) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		wsRepo:   wsRepo,
		cfg:      cfg,
	}
}

// RegisterInput represents registration input
type RegisterInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// LoginInput represents login input
type LoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthResponse represents authentication response
type AuthResponse struct {
	User        *models.UserResponse `json:"user"`
	AccessToken string               `json:"access_token"`
	Session     domain.Session       `json:"-"`
}

// NormalizeUsername lower-cases and trims a submitted username, the
// same canonical form the login form applies.
func NormalizeUsername(u string) string {
	return strings.ToLower(strings.TrimSpace(u))
}

// Register registers a new user and initializes an empty workspace.
func (s *AuthService) Register(ctx context.Context, input *RegisterInput) (*AuthResponse, error) {
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

	// Every account starts with four empty collections.
	if err := s.wsRepo.Save(ctx, username, domain.EmptyWorkspace()); err != nil {
		return nil, err
	}

	slog.Info("user registered", "username", username, "role", role)
	return s.buildResponse(user)
}

// Login authenticates a user. Unknown usernames and wrong passwords
// produce distinct errors so the client can show the two messages
// the login screen distinguishes.
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*AuthResponse, error) {
	username := NormalizeUsername(input.Username)

	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUsernameNotFound
		}
		return nil, err
	}

	if !password.Verify(input.Password, user.Password) {
		return nil, domain.ErrIncorrectPassword
	}

	resp, err := s.buildResponse(user)
	if err != nil {
		return nil, err
	}

	if resp.Session.IsSuperAdmin {
		slog.Info("super admin logged in", "username", username)
	} else {
		slog.Info("user logged in", "username", username, "role", user.Role)
	}
	return resp, nil
}

// SessionFor builds the session value for a user. The configured
// super-admin identity bypasses the stored role entirely.
func (s *AuthService) SessionFor(user *domain.User) domain.Session {
	return domain.Session{
		Username:     user.Username,
		Role:         user.Role,
		IsSuperAdmin: user.Username == s.cfg.SuperAdminUsername,
	}
}

// ValidateAccessToken validates an access token
func (s *AuthService) ValidateAccessToken(accessToken string) (*jwt.Claims, error) {
	return jwt.ValidateAccessToken(accessToken, s.cfg.JWT.Secret)
}

func (s *AuthService) buildResponse(user *models.User) (*AuthResponse, error) {
	sess := s.SessionFor(user.ToDomain())
	token, err := jwt.GenerateAccessToken(
		sess.Username,
		string(sess.Role),
		sess.IsSuperAdmin,
		s.cfg.JWT.Secret,
		s.cfg.JWT.AccessTokenMins,
	)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{
		User:        user.ToResponse(),
		AccessToken: token,
		Session:     sess,
	}, nil
}
