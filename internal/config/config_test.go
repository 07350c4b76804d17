package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("GRIDBASE_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 5000, cfg.Database.RowLimit)
	require.True(t, cfg.Grid.ConfirmDestructive)
	require.False(t, cfg.Grid.CaseSensitiveFilters)
	require.Equal(t, "NULL", cfg.Grid.NullDisplay)
	require.Equal(t, 200, cfg.History.Limit)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("GRIDBASE_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))
	t.Setenv("GRIDBASE_DATABASE_TABLE", "invoices")
	t.Setenv("GRIDBASE_GRID_MAX_COLUMN_WIDTH", "48")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "invoices", cfg.Database.Table)
	require.Equal(t, 48, cfg.Grid.MaxColumnWidth)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	t.Setenv("GRIDBASE_CONFIG", path)

	cfg, err := Load()
	require.NoError(t, err)
	cfg.Database.Table = "orders"
	cfg.Grid.ConfirmDestructive = false
	require.NoError(t, Save(cfg))

	got, err := Load()
	require.NoError(t, err)
	require.Equal(t, "orders", got.Database.Table)
	require.False(t, got.Grid.ConfirmDestructive)
}
