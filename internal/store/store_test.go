package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zachkp/portfolio/internal/config"
	"github.com/Zachkp/portfolio/internal/theme"
)

var _ theme.Store = (*VisitorStore)(nil)

func TestGetSet(t *testing.T) {
	db, err := OpenMemory()
	require.NoError(t, err)
	defer db.Close()
	ctx := context.Background()

	_, found, err := db.Get(ctx, "v1", "k")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, db.Set(ctx, "v1", "k", true))
	v, found, err := db.Get(ctx, "v1", "k")
	require.NoError(t, err)
	assert.True(t, found)
	assert.True(t, v)

	require.NoError(t, db.Set(ctx, "v1", "k", false))
	v, _, err = db.Get(ctx, "v1", "k")
	require.NoError(t, err)
	assert.False(t, v)

	_, found, err = db.Get(ctx, "v2", "k")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestVisitorStoreWithTheme(t *testing.T) {
	db, err := OpenMemory()
	require.NoError(t, err)
	defer db.Close()
	ctx := context.Background()

	m := theme.New(ctx, true, db.Visitor("abc"))
	m.Toggle(ctx)

	again := theme.New(ctx, true, db.Visitor("abc"))
	assert.False(t, again.Dark())

	other := theme.New(ctx, true, db.Visitor("xyz"))
	assert.True(t, other.Dark())
}

func TestCleanup(t *testing.T) {
	db, err := OpenMemory()
	require.NoError(t, err)
	defer db.Close()
	ctx := context.Background()

	require.NoError(t, db.Set(ctx, "v1", "k", true))

	n, err := db.Cleanup(ctx, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = db.Cleanup(ctx, time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func backdate(t *testing.T, db *DB, visitor string, at time.Time) {
	t.Helper()
	_, err := db.db.Exec(`UPDATE preferences SET updated_at = ? WHERE visitor = ?`, at.UTC(), visitor)
	require.NoError(t, err)
}

func TestCleanupKeepsPreferencesPastSession(t *testing.T) {
	db, err := OpenMemory()
	require.NoError(t, err)
	defer db.Close()
	ctx := context.Background()
	cfg := config.Default()
	now := time.Now()

	require.NoError(t, db.Set(ctx, "returning", theme.PreferenceKey, false))
	backdate(t, db, "returning", now.Add(-cfg.SessionTTL-time.Hour))
	require.NoError(t, db.Set(ctx, "gone", theme.PreferenceKey, false))
	backdate(t, db, "gone", now.Add(-cfg.PreferenceTTL-time.Hour))

	n, err := db.Cleanup(ctx, cfg.PreferenceCutoff(now))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	v, found, err := db.Get(ctx, "returning", theme.PreferenceKey)
	require.NoError(t, err)
	assert.True(t, found)
	assert.False(t, v)

	_, found, err = db.Get(ctx, "gone", theme.PreferenceKey)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "prefs.db")
	db, err := Open(path)
	require.NoError(t, err)
	ctx := context.Background()
	require.NoError(t, db.Set(ctx, "v", "k", true))
	require.NoError(t, db.Close())

	db, err = Open(path)
	require.NoError(t, err)
	defer db.Close()
	v, found, err := db.Get(ctx, "v", "k")
	require.NoError(t, err)
	assert.True(t, found)
	assert.True(t, v)
}
