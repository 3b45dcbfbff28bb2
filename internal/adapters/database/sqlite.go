package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

type sqliteEngine struct{}

func (sqliteEngine) driverName() string { return "sqlite3" }

func (sqliteEngine) open(connectionString string) (*sql.DB, error) {
	return sql.Open("sqlite3", connectionString)
}

// databaseName returns the file behind a SQLite connection string, or "" for
// in-memory databases.
func (sqliteEngine) databaseName(connectionString string) (string, error) {
	return SQLitePath(connectionString), nil
}

func (sqliteEngine) openServer(string) (*sql.DB, error) {
	return nil, fmt.Errorf("%w: sqlite", ErrNoServer)
}

func (sqliteEngine) afterConnect(ctx context.Context, db *sql.DB) error {
	// Foreign keys are off by default in SQLite.
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	return nil
}

// SQLite serialises writers; one connection also keeps in-memory databases shared.
func (sqliteEngine) maxOpenConns(int) int { return 1 }

// An in-memory database lives only as long as its single connection.
func (sqliteEngine) connMaxIdleTime(configured time.Duration, connectionString string) time.Duration {
	if SQLitePath(connectionString) == "" {
		return 0
	}
	return configured
}

// SQLitePath extracts the file path from a SQLite connection string.
func SQLitePath(connectionString string) string {
	path, query, _ := strings.Cut(strings.TrimPrefix(connectionString, "file:"), "?")
	if path == ":memory:" || strings.Contains(query, "mode=memory") {
		return ""
	}
	return path
}
