// Package history records which migrations have been applied.
package history

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/satishbabariya/dbprovider/migrate/sqlgen"
)

// DefaultTableName is used when no history table name is configured.
const DefaultTableName = "__migrations_history"

// Record is one applied migration.
type Record struct {
	MigrationID string `db:"migration_id"`
	Checksum    string `db:"checksum"`
	AppliedAt   string `db:"applied_at"`
}

// Tracker reads and writes the migration history table.
type Tracker struct {
	table  string
	helper sqlgen.SQLHelper
}

// NewTracker creates a tracker for table, quoting names with helper.
func NewTracker(table string, helper sqlgen.SQLHelper) *Tracker {
	if table == "" {
		table = DefaultTableName
	}
	return &Tracker{table: table, helper: helper}
}

// TableName returns the unquoted table name.
func (t *Tracker) TableName() string {
	return t.table
}

// EnsureTableOperation returns the operation that creates the history table.
func (t *Tracker) EnsureTableOperation() sqlgen.Operation {
	return sqlgen.SQLOperation{SQL: fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
    migration_id VARCHAR(150) NOT NULL PRIMARY KEY,
    checksum VARCHAR(64) NOT NULL,
    applied_at VARCHAR(40) NOT NULL
)`, t.helper.DelimitIdentifier(t.table))}
}

// Applied returns the applied migrations ordered by id.
func (t *Tracker) Applied(ctx context.Context, q sqlx.ExtContext) ([]Record, error) {
	query := fmt.Sprintf("SELECT migration_id, checksum, applied_at FROM %s ORDER BY migration_id",
		t.helper.DelimitIdentifier(t.table))

	var records []Record
	if err := sqlx.SelectContext(ctx, q, &records, query); err != nil {
		return nil, fmt.Errorf("failed to read migration history: %w", err)
	}
	return records, nil
}

// Record marks a migration as applied.
func (t *Tracker) Record(ctx context.Context, ext sqlx.ExtContext, migrationID, checksum string) error {
	query := ext.Rebind(fmt.Sprintf("INSERT INTO %s (migration_id, checksum, applied_at) VALUES (?, ?, ?)",
		t.helper.DelimitIdentifier(t.table)))

	appliedAt := time.Now().UTC().Format(time.RFC3339)
	if _, err := ext.ExecContext(ctx, query, migrationID, checksum, appliedAt); err != nil {
		return fmt.Errorf("failed to record migration %s: %w", migrationID, err)
	}
	return nil
}

// Remove deletes the record of a migration.
func (t *Tracker) Remove(ctx context.Context, ext sqlx.ExtContext, migrationID string) error {
	query := ext.Rebind(fmt.Sprintf("DELETE FROM %s WHERE migration_id = ?",
		t.helper.DelimitIdentifier(t.table)))

	res, err := ext.ExecContext(ctx, query, migrationID)
	if err != nil {
		return fmt.Errorf("failed to remove migration %s: %w", migrationID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("migration %s is not recorded as applied", migrationID)
	}
	return nil
}

// Checksum computes a SHA256 checksum of the generated commands.
func Checksum(cmds []sqlgen.Command) string {
	h := sha256.New()
	for _, cmd := range cmds {
		h.Write([]byte(cmd.SQL))
	}
	return hex.EncodeToString(h.Sum(nil))
}
