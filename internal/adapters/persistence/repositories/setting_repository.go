package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mfgroup730-cmyk/MF-Accounting-App/internal/adapters/persistence/models"
)

// settingRepository implements SettingRepository interface
type settingRepository struct {
	db *gorm.DB
}

// NewSettingRepository creates a new setting repository
func NewSettingRepository(db *gorm.DB) SettingRepository {
	return &settingRepository{db: db}
}

// Get returns the stored value for (username, key), or "" when unset.
func (r *settingRepository) Get(ctx context.Context, username, key string) (string, error) {
	var s models.Setting
	err := r.db.WithContext(ctx).Where("username = ? AND setting_key = ?", username, key).First(&s).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	return s.Value, nil
}

// Set upserts the value for (username, key).
func (r *settingRepository) Set(ctx context.Context, username, key, value string) error {
	s := models.Setting{Username: username, Key: key, Value: value}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "username"}, {Name: "setting_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&s).Error
}

// All returns every setting stored for username.
func (r *settingRepository) All(ctx context.Context, username string) (map[string]string, error) {
	var rows []models.Setting
	if err := r.db.WithContext(ctx).Where("username = ?", username).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[string]string, len(rows))
	for _, row := range rows {
		out[row.Key] = row.Value
	}
	return out, nil
}
