package repomanager

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/marketpulse/internal/server/repositories/users"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDB(t *testing.T) *sql.DB {
	t.Helper()
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func stubGoose(t *testing.T, fn func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error) {
	t.Helper()
	orig := gooseUpContext
	gooseUpContext = fn
	t.Cleanup(func() { gooseUpContext = orig })
}

func TestManagers_VendRepositories(t *testing.T) {
	db := newDB(t)

	assert.IsType(t, &users.PostgresRepository{}, NewPostgresRepositoryManager().Users(db))
	assert.IsType(t, &users.SQLiteRepository{}, NewSQLiteRepositoryManager().Users(db))

	var _ RepositoryManager = NewPostgresRepositoryManager()
	var _ RepositoryManager = NewSQLiteRepositoryManager()
}

func TestRunMigrations_UsesDialectDirectory(t *testing.T) {
	db := newDB(t)

	tests := []struct {
		name    string
		manager RepositoryManager
		wantDir string
	}{
		{name: "postgres", manager: NewPostgresRepositoryManager(), wantDir: "postgres"},
		{name: "sqlite", manager: NewSQLiteRepositoryManager(), wantDir: "sqlite"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotDir string
			stubGoose(t, func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
				gotDir = dir
				return nil
			})

			require.NoError(t, tt.manager.RunMigrations(context.Background(), db))
			assert.Equal(t, tt.wantDir, gotDir)
		})
	}
}

func TestRunMigrations_Error(t *testing.T) {
	db := newDB(t)
	stubGoose(t, func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		return errors.New("boom")
	})

	err := NewPostgresRepositoryManager().RunMigrations(context.Background(), db)
	assert.EqualError(t, err, "boom")
}

func TestIsPostgresDSN(t *testing.T) {
	tests := map[string]bool{
		"postgres://u:p@localhost:5432/db":   true,
		"postgresql://u:p@localhost:5432/db": true,
		"users.db":                           false,
		"file:users.db?cache=shared":         false,
		":memory:":                           false,
	}
	for dsn, want := range tests {
		assert.Equal(t, want, IsPostgresDSN(dsn), dsn)
	}
}
