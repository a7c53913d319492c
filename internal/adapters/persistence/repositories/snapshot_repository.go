package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/mfgroup730-cmyk/MF-Accounting-App/internal/adapters/persistence/models"
)

// snapshotRepository implements SnapshotRepository interface
type snapshotRepository struct {
	db *gorm.DB
}

// NewSnapshotRepository creates a new snapshot repository
func NewSnapshotRepository(db *gorm.DB) SnapshotRepository {
	return &snapshotRepository{db: db}
}

// Create stores a new workspace snapshot
func (r *snapshotRepository) Create(ctx context.Context, snap *models.WorkspaceSnapshot) error {
	return r.db.WithContext(ctx).Create(snap).Error
}

// Prune deletes all but the keep most recent snapshots for username.
func (r *snapshotRepository) Prune(ctx context.Context, username string, keep int) error {
	var ids []uint
	err := r.db.WithContext(ctx).
		Model(&models.WorkspaceSnapshot{}).
		Where("username = ?", username).
		Order("created_at desc").
		Offset(keep).
		Pluck("id", &ids).Error
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Delete(&models.WorkspaceSnapshot{}, ids).Error
}
