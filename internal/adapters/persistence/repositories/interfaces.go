package repositories

import (
	"context"

	"github.com/mfgroup730-cmyk/MF-Accounting-App/internal/adapters/persistence/models"
	"github.com/mfgroup730-cmyk/MF-Accounting-App/internal/core/domain"
)

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, username string) error
	List(ctx context.Context, offset, limit int) ([]*models.User, int64, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	Count(ctx context.Context) (int64, error)
}

// WorkspaceRepository mediates all reads/writes of workspace payloads.
// Load never fails on corrupt storage: it heals to empty collections.
type WorkspaceRepository interface {
	Load(ctx context.Context, username string) (*domain.Workspace, error)
	Save(ctx context.Context, username string, ws *domain.Workspace) error
	Usernames(ctx context.Context) ([]string, error)
}

// SnapshotRepository stores periodic workspace backups.
type SnapshotRepository interface {
	Create(ctx context.Context, snap *models.WorkspaceSnapshot) error
	Prune(ctx context.Context, username string, keep int) error
}

// SettingRepository stores per-user preference flags.
type SettingRepository interface {
	Get(ctx context.Context, username, key string) (string, error)
	Set(ctx context.Context, username, key, value string) error
	All(ctx context.Context, username string) (map[string]string, error)
}
