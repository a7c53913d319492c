package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfgroup730-cmyk/MF-Accounting-App/internal/adapters/persistence/repositories"
	"github.com/mfgroup730-cmyk/MF-Accounting-App/internal/core/domain"
)

func newTestUserService(t *testing.T) *UserService {
	t.Helper()
	db := setupTestDB(t, t.Name())
	return NewUserService(repositories.NewUserRepository(db), repositories.NewWorkspaceRepository(db))
}

func adminSession(username string) domain.Session {
	return domain.Session{Username: username, Role: domain.RoleAdmin}
}

func TestOnlyAdminsManageUsers(t *testing.T) {
	svc := newTestUserService(t)
	ctx := context.Background()

	input := &CreateUserInput{Username: "carol", Password: "secret", Role: "Auditor"}

	_, err := svc.Create(ctx, managerSession("alice"), input)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, _, err = svc.List(ctx, auditorSession("alice"), 0, 20)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	user, err := svc.Create(ctx, adminSession("alice"), input)
	require.NoError(t, err)
	assert.Equal(t, "carol", user.Username)
	assert.Equal(t, "Auditor", user.Role)
}

func TestUpdateUserRoleAndPassword(t *testing.T) {
	svc := newTestUserService(t)
	ctx := context.Background()
	admin := adminSession("alice")

	_, err := svc.Create(ctx, admin, &CreateUserInput{Username: "carol", Password: "secret", Role: "Auditor"})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, admin, "carol", &UpdateUserInput{Role: "Admin"})
	require.NoError(t, err)
	assert.Equal(t, "Admin", updated.Role)

	_, err = svc.Update(ctx, admin, "carol", &UpdateUserInput{Password: "ab"})
	assert.ErrorIs(t, err, domain.ErrPasswordTooWeak)

	_, err = svc.Update(ctx, admin, "nobody", &UpdateUserInput{Role: "Admin"})
	assert.ErrorIs(t, err, domain.ErrUsernameNotFound)
}

func TestDeleteUser(t *testing.T) {
	svc := newTestUserService(t)
	ctx := context.Background()
	admin := adminSession("alice")

	_, err := svc.Create(ctx, admin, &CreateUserInput{Username: "carol", Password: "secret", Role: "Auditor"})
	require.NoError(t, err)

	// Admins cannot delete themselves.
	err = svc.Delete(ctx, admin, "alice")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	require.NoError(t, svc.Delete(ctx, admin, "carol"))
	err = svc.Delete(ctx, admin, "carol")
	assert.ErrorIs(t, err, domain.ErrUsernameNotFound)
}
