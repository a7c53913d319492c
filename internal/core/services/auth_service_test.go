package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfgroup730-cmyk/MF-Accounting-App/internal/adapters/persistence/repositories"
	"github.com/mfgroup730-cmyk/MF-Accounting-App/internal/core/domain"
)

func newTestAuthService(t *testing.T) (*AuthService, *WorkspaceService) {
	t.Helper()
	db := setupTestDB(t, t.Name())
	userRepo := repositories.NewUserRepository(db)
	wsRepo := repositories.NewWorkspaceRepository(db)
	return NewAuthService(userRepo, wsRepo, testConfig()), NewWorkspaceService(wsRepo)
}

func TestRegisterNormalizesUsername(t *testing.T) {
	svc, wsSvc := newTestAuthService(t)
	ctx := context.Background()

	result, err := svc.Register(ctx, &RegisterInput{
		Username: "  Alice Smith ",
		Password: "secret",
		Role:     "FleetManager",
	})
	require.NoError(t, err)
	assert.Equal(t, "alice smith", result.User.Username)
	assert.NotEmpty(t, result.AccessToken)

	// Registration provisions an empty workspace.
	ws, err := wsSvc.Load(ctx, result.Session)
	require.NoError(t, err)
	assert.Empty(t, ws.Vehicles)
	assert.Empty(t, ws.Bills)
	assert.Empty(t, ws.Clients)
	assert.Empty(t, ws.Folders)
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, &RegisterInput{Username: "ab", Password: "secret", Role: "Admin"})
	assert.ErrorIs(t, err, domain.ErrUsernameTooShort)

	_, err = svc.Register(ctx, &RegisterInput{Username: "alice", Password: "abc", Role: "Admin"})
	assert.ErrorIs(t, err, domain.ErrPasswordTooWeak)

	_, err = svc.Register(ctx, &RegisterInput{Username: "alice", Password: "secret", Role: "Owner"})
	assert.ErrorIs(t, err, domain.ErrInvalidRole)

	_, err = svc.Register(ctx, &RegisterInput{Username: "alice", Password: "secret", Role: "Auditor"})
	require.NoError(t, err)
	_, err = svc.Register(ctx, &RegisterInput{Username: "ALICE", Password: "secret", Role: "Auditor"})
	assert.ErrorIs(t, err, domain.ErrUserAlreadyExists)
}

func TestLoginDistinguishesUnknownUserFromWrongPassword(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, &RegisterInput{Username: "alice", Password: "secret", Role: "Admin"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, &LoginInput{Username: "nobody", Password: "secret"})
	assert.ErrorIs(t, err, domain.ErrUsernameNotFound)

	_, err = svc.Login(ctx, &LoginInput{Username: "alice", Password: "wrong"})
	assert.ErrorIs(t, err, domain.ErrIncorrectPassword)

	result, err := svc.Login(ctx, &LoginInput{Username: " ALICE ", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, "alice", result.Session.Username)
	assert.Equal(t, domain.RoleAdmin, result.Session.Role)
	assert.False(t, result.Session.IsSuperAdmin)
}

func TestSuperAdminSessionFlag(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	// testConfig sets the super admin username to "boss". The stored
	// role does not matter for the flag.
	_, err := svc.Register(ctx, &RegisterInput{Username: "boss", Password: "secret", Role: "Auditor"})
	require.NoError(t, err)

	result, err := svc.Login(ctx, &LoginInput{Username: "boss", Password: "secret"})
	require.NoError(t, err)
	assert.True(t, result.Session.IsSuperAdmin)

	claims, err := svc.ValidateAccessToken(result.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "boss", claims.Username)
	assert.True(t, claims.Super)
}
