package services

import (
	"context"

	"github.com/mfgroup730-cmyk/MF-Accounting-App/internal/adapters/persistence/repositories"
	"github.com/mfgroup730-cmyk/MF-Accounting-App/internal/core/domain"
)

// Preference keys exposed by the UI.
const (
	PrefDarkMode   = "darkMode"
	PrefAnimations = "animations"
)

// Preferences are per-user display flags. Animations default to on,
// dark mode to off.
type Preferences struct {
	DarkMode   bool `json:"darkMode"`
	Animations bool `json:"animations"`
}

// PreferenceService stores per-user display preferences.
type PreferenceService struct {
	settingRepo repositories.SettingRepository
}

// NewPreferenceService creates a new preference service
func NewPreferenceService(settingRepo repositories.SettingRepository) *PreferenceService {
	return &PreferenceService{settingRepo: settingRepo}
}

// Get returns the caller's preferences, applying defaults for keys
// never written.
func (s *PreferenceService) Get(ctx context.Context, sess domain.Session) (*Preferences, error) {
	all, err := s.settingRepo.All(ctx, sess.Username)
	if err != nil {
		return nil, err
	}
	prefs := &Preferences{DarkMode: false, Animations: true}
	if v, ok := all[PrefDarkMode]; ok {
		prefs.DarkMode = v == "true"
	}
	if v, ok := all[PrefAnimations]; ok {
		prefs.Animations = v == "true"
	}
	return prefs, nil
}

// Set overwrites the caller's preferences.
func (s *PreferenceService) Set(ctx context.Context, sess domain.Session, prefs *Preferences) error {
	if err := s.settingRepo.Set(ctx, sess.Username, PrefDarkMode, boolString(prefs.DarkMode)); err != nil {
		return err
	}
	return s.settingRepo.Set(ctx, sess.Username, PrefAnimations, boolString(prefs.Animations))
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
