package db

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema/postgres.sql
var PostgresSchema string

//go:embed schema/sqlite.sql
var SQLiteSchema string

// NewSQLite opens (or creates) the sqlite database at path and applies the schema.
// Use ":memory:" for a throwaway database.
func NewSQLite(ctx context.Context, path string) (*sqlx.DB, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create sqlite dir: %w", err)
		}
	}

	sqliteDB, err := sqlx.ConnectContext(ctx, "sqlite3", path+"?_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("connect sqlite %s: %w", path, err)
	}

	// one writer at a time, and a single connection keeps ":memory:" databases alive
	sqliteDB.SetMaxOpenConns(1)
	sqliteDB.SetMaxIdleConns(1)

	if _, err := sqliteDB.ExecContext(ctx, SQLiteSchema); err != nil {
		_ = sqliteDB.Close()
		return nil, fmt.Errorf("apply sqlite schema: %w", err)
	}

	return sqliteDB, nil
}
