package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfgroup730-cmyk/MF-Accounting-App/internal/adapters/persistence/models"
	"github.com/mfgroup730-cmyk/MF-Accounting-App/internal/adapters/persistence/repositories"
)

func TestSnapshotAllCopiesAndPrunes(t *testing.T) {
	db := setupTestDB(t, t.Name())
	wsRepo := repositories.NewWorkspaceRepository(db)
	snapRepo := repositories.NewSnapshotRepository(db)
	wsSvc := NewWorkspaceService(wsRepo)
	svc := NewSnapshotService(wsRepo, snapRepo, "@hourly", 2)
	ctx := context.Background()

	_, err := wsSvc.AddVehicle(ctx, managerSession("alice"), &VehicleInput{Name: "Truck"})
	require.NoError(t, err)

	for i := 0; i < 4; i++ {
		require.NoError(t, svc.SnapshotAll(ctx))
	}

	var count int64
	require.NoError(t, db.Model(&models.WorkspaceSnapshot{}).
		Where("username = ?", "alice").Count(&count).Error)
	// Only the configured number of snapshots survives pruning.
	assert.Equal(t, int64(2), count)

	var snap models.WorkspaceSnapshot
	require.NoError(t, db.Where("username = ?", "alice").
		Order("id desc").First(&snap).Error)
	assert.Contains(t, snap.Payload, "Truck")
}
