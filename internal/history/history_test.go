package history

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/MCB-SMART-BOY/gridbase/internal/database"
)

func setupRepo(t *testing.T) *Repo {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	migrations, err := filepath.Abs("../database/migrations")
	require.NoError(t, err)
	require.NoError(t, database.RunMigrations(dbPath, migrations))

	db, err := database.Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewRepo(db)
}

func TestAddAndRecent(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := setupRepo(t)

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Add(ctx, Record{
			ID:          fmt.Sprintf("id-%d", i),
			ExecutedAt:  base.Add(time.Duration(i) * time.Minute),
			TableName:   "people",
			Statements:  i + 1,
			Destructive: i == 2,
			SQL:         fmt.Sprintf("UPDATE people SET n = %d", i),
			Status:      StatusApplied,
		}))
	}

	recs, err := repo.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	require.Equal(t, "id-2", recs[0].ID)
	require.Equal(t, "id-1", recs[1].ID)
	require.True(t, recs[0].Destructive)
	require.False(t, recs[1].Destructive)
	require.Equal(t, 3, recs[0].Statements)
}

func TestPruneKeepsNewest(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := setupRepo(t)

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Add(ctx, Record{
			ID:         fmt.Sprintf("id-%d", i),
			ExecutedAt: base.Add(time.Duration(i) * time.Minute),
			TableName:  "people",
			SQL:        "SELECT 1",
			Status:     StatusApplied,
		}))
	}

	require.NoError(t, repo.Prune(ctx, 2))
	recs, err := repo.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	require.Equal(t, "id-4", recs[0].ID)
	require.Equal(t, "id-3", recs[1].ID)
}
