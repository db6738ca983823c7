package repomanager

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/marketpulse/internal/common"
	"github.com/dmitrijs2005/marketpulse/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_SQLiteInMemoryRunsMigrations(t *testing.T) {
	ctx := context.Background()

	db, m, err := Open(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	assert.IsType(t, &SQLiteRepositoryManager{}, m)

	repo := m.Users(db)
	u, err := repo.Create(ctx, &models.User{UserName: "alice", PasswordHash: "h"})
	require.NoError(t, err)
	assert.Positive(t, u.ID)

	_, err = repo.Create(ctx, &models.User{UserName: "alice", PasswordHash: "h2"})
	assert.ErrorIs(t, err, common.ErrorConflict)

	// migrations are idempotent
	require.NoError(t, m.RunMigrations(ctx, db))
}

func TestOpen_BadPostgresDSNFails(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := Open(ctx, "postgres://nobody@127.0.0.1:1/none?connect_timeout=1")
	assert.Error(t, err)
}

func TestOpen_SQLiteFileCreatesParentDir(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data", "users.db")

	db, _, err := Open(ctx, path)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	_, err = os.Stat(path)
	assert.NoError(t, err)
}
