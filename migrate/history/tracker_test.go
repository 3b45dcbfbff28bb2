package history

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/satishbabariya/dbprovider/migrate/sqlgen"
)

func setup(t *testing.T, table string) (*sqlx.DB, *Tracker) {
	t.Helper()
	ctx := context.Background()

	db, err := sqlx.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	tr := NewTracker(table, sqlgen.SQLiteHelper())
	cmds, err := sqlgen.NewSQLiteGenerator().Generate([]sqlgen.Operation{tr.EnsureTableOperation()})
	require.NoError(t, err)
	for _, cmd := range cmds {
		_, err := db.ExecContext(ctx, cmd.SQL)
		require.NoError(t, err)
	}
	return db, tr
}

func TestTracker_DefaultTable(t *testing.T) {
	tr := NewTracker("", sqlgen.SQLiteHelper())
	assert.Equal(t, DefaultTableName, tr.TableName())
}

func TestTracker_RecordAndRemove(t *testing.T) {
	ctx := context.Background()
	db, tr := setup(t, "Plugin_Shop")

	var n int
	require.NoError(t, db.GetContext(ctx, &n, `SELECT COUNT(*) FROM sqlite_master WHERE name = 'Plugin_Shop'`))
	assert.Equal(t, 1, n)

	require.NoError(t, tr.Record(ctx, db, "0002_orders", "bb"))
	require.NoError(t, tr.Record(ctx, db, "0001_init", "aa"))

	records, err := tr.Applied(ctx, db)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "0001_init", records[0].MigrationID)
	assert.Equal(t, "aa", records[0].Checksum)
	assert.NotEmpty(t, records[0].AppliedAt)
	assert.Equal(t, "0002_orders", records[1].MigrationID)

	require.NoError(t, tr.Remove(ctx, db, "0002_orders"))
	assert.Error(t, tr.Remove(ctx, db, "0002_orders"))

	records, err = tr.Applied(ctx, db)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestTracker_QuotedTableName(t *testing.T) {
	ctx := context.Background()
	db, tr := setup(t, `odd"name`)

	require.NoError(t, tr.Record(ctx, db, "0001", "x"))
	records, err := tr.Applied(ctx, db)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestChecksum(t *testing.T) {
	a := Checksum([]sqlgen.Command{{SQL: "SELECT 1;"}})
	b := Checksum([]sqlgen.Command{{SQL: "SELECT 2;"}})

	assert.Len(t, a, 64)
	assert.NotEqual(t, a, b)
	assert.Equal(t, a, Checksum([]sqlgen.Command{{SQL: "SELECT 1;"}}))
}
