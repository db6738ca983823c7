package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/marketpulse/internal/dbx"
	"github.com/dmitrijs2005/marketpulse/internal/filex"
	"github.com/dmitrijs2005/marketpulse/internal/server/migrations"
	"github.com/dmitrijs2005/marketpulse/internal/server/repositories/users"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

// SQLiteRepositoryManager vends SQLite-backed repositories.
type SQLiteRepositoryManager struct{}

func NewSQLiteRepositoryManager() *SQLiteRepositoryManager {
	return &SQLiteRepositoryManager{}
}

// Users returns a users.Repository bound to the provided DBTX.
func (m *SQLiteRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewSQLiteRepository(db)
}

// RunMigrations applies the embedded sqlite migrations.
func (m *SQLiteRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.SQLite)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}
	return gooseUpContext(ctx, db, "sqlite")
}

// openSQLite keeps a single connection: writers are serialised and an
// in-memory database stays the same database across queries.
func openSQLite(dsn string) (*sql.DB, error) {
	if path := filex.SQLiteFilePath(dsn); path != "" {
		if err := filex.EnsureParentDir(path); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	return db, nil
}
