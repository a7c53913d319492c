package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/mfgroup730-cmyk/MF-Accounting-App/internal/core/domain"
)

// User represents the users table
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Username  string         `gorm:"uniqueIndex;size:50;not null" json:"username"`
	Password  string         `gorm:"size:255;not null" json:"-"`
	Role      string         `gorm:"size:20;default:'FleetManager'" json:"role"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// ToDomain maps the row to the domain user.
func (u *User) ToDomain() *domain.User {
	return &domain.User{
		Username: u.Username,
		Password: u.Password,
		Role:     domain.Role(u.Role),
	}
}

// UserResponse DTO
type UserResponse struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

// WorkspaceRecord represents the workspaces table. One row per user,
// holding the whole workspace as a single JSON payload that is
// atomically replaced on every save. This preserves the storage
// contract of the original data_<username> keys.
type WorkspaceRecord struct {
	Username  string    `gorm:"primaryKey;size:50" json:"username"`
	Payload   string    `gorm:"type:text;not null" json:"payload"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (WorkspaceRecord) TableName() string {
	return "workspaces"
}

// WorkspaceSnapshot represents the workspace_snapshots table, written
// by the periodic snapshot job.
type WorkspaceSnapshot struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"index;size:50;not null" json:"username"`
	Payload   string    `gorm:"type:text;not null" json:"payload"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (WorkspaceSnapshot) TableName() string {
	return "workspace_snapshots"
}

// Setting represents the settings table: per-user preference flags
// (the original darkMode / animations keys).
type Setting struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Username string `gorm:"uniqueIndex:idx_settings_user_key;size:50;not null" json:"username"`
	Key      string `gorm:"column:setting_key;uniqueIndex:idx_settings_user_key;size:50;not null" json:"key"`
	Value    string `gorm:"size:255" json:"value"`
}

func (Setting) TableName() string {
	return "settings"
}

// AutoMigrate runs auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&WorkspaceRecord{},
		&WorkspaceSnapshot{},
		&Setting{},
	)
}
