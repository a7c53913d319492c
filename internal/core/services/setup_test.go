package services

import (
	"fmt"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/mfgroup730-cmyk/MF-Accounting-App/internal/adapters/persistence/models"
	"github.com/mfgroup730-cmyk/MF-Accounting-App/internal/adapters/persistence/repositories"
	"github.com/mfgroup730-cmyk/MF-Accounting-App/internal/config"
	"github.com/mfgroup730-cmyk/MF-Accounting-App/internal/core/domain"
)

func setupTestDB(t *testing.T, name string) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newTestWorkspaceService(t *testing.T) (*WorkspaceService, repositories.WorkspaceRepository) {
	t.Helper()
	db := setupTestDB(t, t.Name())
	wsRepo := repositories.NewWorkspaceRepository(db)
	return NewWorkspaceService(wsRepo), wsRepo
}

func testConfig() *config.Config {
	return &config.Config{
		AppMode:            "dev",
		SuperAdminUsername: "boss",
		JWT: config.JWTConfig{
			Secret:          "test_secret",
			AccessTokenMins: 15,
		},
	}
}

func managerSession(username string) domain.Session {
	return domain.Session{Username: username, Role: domain.RoleFleetManager}
}

func auditorSession(username string) domain.Session {
	return domain.Session{Username: username, Role: domain.RoleAuditor}
}
