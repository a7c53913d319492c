package repositories

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/mfgroup730-cmyk/MF-Accounting-App/internal/adapters/persistence/models"
	"github.com/mfgroup730-cmyk/MF-Accounting-App/internal/core/domain"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestWorkspaceRoundTrip(t *testing.T) {
	repo := NewWorkspaceRepository(setupTestDB(t))
	ctx := context.Background()

	folderID := "f1"
	ws := &domain.Workspace{
		Vehicles: []domain.Vehicle{{ID: "v1", Name: "Truck", FolderID: &folderID}},
		Bills: []domain.Bill{{
			ID:        "b1",
			VehicleID: "v1",
			Services:  []domain.ServiceLine{{Name: "Towing", Cost: 50}},
			Total:     50,
		}},
		Clients: []domain.Client{{ID: "c1", Name: "ACME"}},
		Folders: []domain.Folder{{ID: folderID, Name: "Fleet", Kind: domain.KindVehicle}},
	}
	require.NoError(t, repo.Save(ctx, "alice", ws))

	got, err := repo.Load(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, ws.Vehicles, got.Vehicles)
	assert.Equal(t, ws.Bills, got.Bills)
	assert.Equal(t, ws.Clients, got.Clients)
	assert.Equal(t, ws.Folders, got.Folders)
}

func TestSaveReplacesWholePayload(t *testing.T) {
	repo := NewWorkspaceRepository(setupTestDB(t))
	ctx := context.Background()

	first := domain.EmptyWorkspace()
	first.Vehicles = []domain.Vehicle{{ID: "v1", Name: "Old"}}
	require.NoError(t, repo.Save(ctx, "alice", first))

	second := domain.EmptyWorkspace()
	second.Clients = []domain.Client{{ID: "c1", Name: "New"}}
	require.NoError(t, repo.Save(ctx, "alice", second))

	got, err := repo.Load(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, got.Vehicles)
	require.Len(t, got.Clients, 1)
}

func TestLoadMissingUserHealsToEmpty(t *testing.T) {
	repo := NewWorkspaceRepository(setupTestDB(t))

	got, err := repo.Load(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Empty(t, got.Vehicles)
	assert.Empty(t, got.Bills)
	assert.Empty(t, got.Clients)
	assert.Empty(t, got.Folders)
}

func TestLoadCorruptPayloadHealsToEmpty(t *testing.T) {
	db := setupTestDB(t)
	repo := NewWorkspaceRepository(db)
	ctx := context.Background()

	cases := []struct {
		name    string
		payload string
	}{
		{"invalid json", "{not json"},
		{"non-object", `"just a string"`},
		{"null", "null"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			record := &models.WorkspaceRecord{Username: "corrupt", Payload: tc.payload}
			require.NoError(t, db.Save(record).Error)

			got, err := repo.Load(ctx, "corrupt")
			require.NoError(t, err)
			assert.Empty(t, got.Vehicles)
			assert.Empty(t, got.Bills)
			assert.Empty(t, got.Clients)
			assert.Empty(t, got.Folders)
		})
	}
}

func TestLoadPartiallyCorruptPayloadKeepsGoodCollections(t *testing.T) {
	db := setupTestDB(t)
	repo := NewWorkspaceRepository(db)
	ctx := context.Background()

	// Vehicles is the wrong shape, clients are fine.
	payload := `{"vehicles": 42, "clients": [{"id": "c1", "name": "ACME"}]}`
	record := &models.WorkspaceRecord{Username: "partial", Payload: payload}
	require.NoError(t, db.Save(record).Error)

	got, err := repo.Load(ctx, "partial")
	require.NoError(t, err)
	assert.Empty(t, got.Vehicles)
	require.Len(t, got.Clients, 1)
	assert.Equal(t, "ACME", got.Clients[0].Name)
}

func TestUsernamesListsAllWorkspaces(t *testing.T) {
	repo := NewWorkspaceRepository(setupTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, "alice", domain.EmptyWorkspace()))
	require.NoError(t, repo.Save(ctx, "bob", domain.EmptyWorkspace()))

	names, err := repo.Usernames(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"alice", "bob"}, names)
}
