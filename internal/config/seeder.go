package config

import (
	"encoding/json"
	"log/slog"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mfgroup730-cmyk/MF-Accounting-App/internal/adapters/persistence/models"
	"github.com/mfgroup730-cmyk/MF-Accounting-App/internal/core/domain"
	"github.com/mfgroup730-cmyk/MF-Accounting-App/internal/pkg/password"
)

// Seeder handles database seeding
type Seeder struct {
	db  *gorm.DB
	cfg *Config
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB, cfg *Config) *Seeder {
	return &Seeder{db: db, cfg: cfg}
}

// Run executes all seeders
func (s *Seeder) Run() error {
	slog.Info("running database seeders")

	if err := s.seedSuperAdmin(); err != nil {
		slog.Warn("super admin seeder skipped", "error", err)
	}

	slog.Info("database seeding completed")
	return nil
}

// seedSuperAdmin ensures the configured super-admin account exists.
// The initial password comes from SUPER_ADMIN_PASSWORD and should be
// changed after first login.
func (s *Seeder) seedSuperAdmin() error {
	username := s.cfg.SuperAdminUsername
	if username == "" {
		slog.Info("no SUPER_ADMIN_USERNAME configured, skipping super admin seed")
		return nil
	}

	var count int64
	s.db.Model(&models.User{}).Where("username = ?", username).Count(&count)
	if count > 0 {
		return nil // Already exists
	}

	initialPassword := getEnv("SUPER_ADMIN_PASSWORD", "")
	if initialPassword == "" {
		slog.Warn("SUPER_ADMIN_PASSWORD not set, skipping super admin seed")
		return nil
	}

	hashedPassword, err := password.Hash(initialPassword)
	if err != nil {
		return err
	}

	admin := &models.User{
		Username: username,
		Password: hashedPassword,
		Role:     string(domain.RoleAdmin),
	}
	if err := s.db.Create(admin).Error; err != nil {
		return err
	}

	payload, err := json.Marshal(domain.EmptyWorkspace())
	if err != nil {
		return err
	}
	record := &models.WorkspaceRecord{
		Username: username,
		Payload:  string(payload),
	}
	if err := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(record).Error; err != nil {
		return err
	}

	slog.Info("super admin user created", "username", username)
	return nil
}
