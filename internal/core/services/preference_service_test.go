package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfgroup730-cmyk/MF-Accounting-App/internal/adapters/persistence/repositories"
)

func TestPreferencesDefaultsAndRoundTrip(t *testing.T) {
	db := setupTestDB(t, t.Name())
	svc := NewPreferenceService(repositories.NewSettingRepository(db))
	ctx := context.Background()
	sess := managerSession("alice")

	prefs, err := svc.Get(ctx, sess)
	require.NoError(t, err)
	assert.False(t, prefs.DarkMode)
	assert.True(t, prefs.Animations)

	require.NoError(t, svc.Set(ctx, sess, &Preferences{DarkMode: true, Animations: false}))

	prefs, err = svc.Get(ctx, sess)
	require.NoError(t, err)
	assert.True(t, prefs.DarkMode)
	assert.False(t, prefs.Animations)

	// Another user still sees the defaults.
	other, err := svc.Get(ctx, managerSession("bob"))
	require.NoError(t, err)
	assert.False(t, other.DarkMode)
	assert.True(t, other.Animations)
}
