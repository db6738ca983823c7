// Package repomanager vends repository implementations for the configured
// database and runs its schema migrations (goose).
package repomanager

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/marketpulse/internal/dbx"
	"github.com/dmitrijs2005/marketpulse/internal/server/repositories/users"
	"github.com/pressly/goose/v3"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// IsPostgresDSN reports whether dsn addresses PostgreSQL. Anything else is
// treated as a SQLite file name or URI.
func IsPostgresDSN(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}

// Open connects to dsn, applies migrations and returns the handle together
// with the matching manager. The caller owns the returned *sql.DB.
func Open(ctx context.Context, dsn string) (*sql.DB, RepositoryManager, error) {
	var (
		db  *sql.DB
		m   RepositoryManager
		err error
	)

	if IsPostgresDSN(dsn) {
		db, err = openPostgres(dsn)
		m = NewPostgresRepositoryManager()
	} else {
		db, err = openSQLite(dsn)
		m = NewSQLiteRepositoryManager()
	}
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("ping database: %w", err)
	}

	if err := m.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("migrate database: %w", err)
	}

	return db, m, nil
}
