package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mfgroup730-cmyk/MF-Accounting-App/internal/adapters/persistence/models"
	"github.com/mfgroup730-cmyk/MF-Accounting-App/internal/core/domain"
)

// workspaceRepository implements WorkspaceRepository interface
type workspaceRepository struct {
	db *gorm.DB
}

// NewWorkspaceRepository creates a new workspace repository
func NewWorkspaceRepository(db *gorm.DB) WorkspaceRepository {
	return &workspaceRepository{db: db}
}

// Load reads and decodes the workspace payload for username. Corrupt
// storage is never surfaced: an absent row, invalid JSON, a non-object
// payload, or a wrong-shaped collection field all heal to empty
// collections. Corruption is logged and silently replaced.
func (r *workspaceRepository) Load(ctx context.Context, username string) (*domain.Workspace, error) {
	if username == "" {
		return domain.EmptyWorkspace(), nil
	}

	var rec models.WorkspaceRecord
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.EmptyWorkspace(), nil
		}
		return nil, err
	}

	return decodeWorkspace(username, []byte(rec.Payload)), nil
}

// Save serializes the four collections as one JSON value and replaces
// the row keyed by username. A no-op when username is empty.
func (r *workspaceRepository) Save(ctx context.Context, username string, ws *domain.Workspace) error {
	if username == "" {
		return nil
	}

	payload, err := json.Marshal(ws)
	if err != nil {
		return err
	}

	rec := models.WorkspaceRecord{Username: username, Payload: string(payload)}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "username"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
	}).Create(&rec).Error
}

// Usernames lists every username that has a stored workspace.
func (r *workspaceRepository) Usernames(ctx context.Context) ([]string, error) {
	var names []string
	err := r.db.WithContext(ctx).Model(&models.WorkspaceRecord{}).Pluck("username", &names).Error
	return names, err
}

// decodeWorkspace tolerantly decodes a stored payload, substituting an
// empty collection for every field that is missing or wrong-shaped.
func decodeWorkspace(username string, payload []byte) *domain.Workspace {
	ws := domain.EmptyWorkspace()

	var raw struct {
		Vehicles json.RawMessage `json:"vehicles"`
		Bills    json.RawMessage `json:"bills"`
		Clients  json.RawMessage `json:"clients"`
		Folders  json.RawMessage `json:"folders"`
	}
	if err := json.Unmarshal(payload, &raw); err != nil {
		slog.Warn("workspace payload corrupted, resetting to empty", "username", username, "error", err)
		return ws
	}

	decodeField(username, "vehicles", raw.Vehicles, &ws.Vehicles)
	decodeField(username, "bills", raw.Bills, &ws.Bills)
	decodeField(username, "clients", raw.Clients, &ws.Clients)
	decodeField(username, "folders", raw.Folders, &ws.Folders)
	return ws
}

func decodeField[T any](username, field string, raw json.RawMessage, dst *[]T) {
	if len(raw) == 0 {
		return
	}
	var parsed []T
	if err := json.Unmarshal(raw, &parsed); err != nil {
		slog.Warn("workspace field corrupted, substituting empty",
			"username", username, "field", field, "error", err)
		return
	}
	if parsed != nil {
		*dst = parsed
	}
}
