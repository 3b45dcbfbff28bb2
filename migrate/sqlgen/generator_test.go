package sqlgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresGenerator(t *testing.T) {
	g := NewPostgresGenerator()

	cmds, err := g.Generate([]Operation{
		CreateDatabaseOperation{Name: "shop", Template: "template1", Collation: "C", Tablespace: "ts"},
		DropDatabaseOperation{Name: "shop"},
		EnsureSchemaOperation{Name: "public"},
		EnsureSchemaOperation{Name: "billing"},
		DropSchemaOperation{Name: "billing"},
	})
	require.NoError(t, err)

	assert.Equal(t, []Command{
		{SQL: `CREATE DATABASE "shop" TEMPLATE "template1" LC_COLLATE "C" TABLESPACE "ts";` + "\n", TransactionSuppressed: true},
		{SQL: `DROP DATABASE "shop";` + "\n", TransactionSuppressed: true},
		{SQL: `CREATE SCHEMA IF NOT EXISTS "billing";` + "\n"},
		{SQL: `DROP SCHEMA IF EXISTS "billing" CASCADE;` + "\n"},
	}, cmds)
}

func TestMySQLGenerator(t *testing.T) {
	g := NewMySQLGenerator()

	cmds, err := g.Generate([]Operation{
		CreateDatabaseOperation{Name: "sh`op", Collation: "utf8mb4_bin"},
		EnsureSchemaOperation{Name: "ignored"},
		DropDatabaseOperation{Name: "shop"},
	})
	require.NoError(t, err)

	assert.Equal(t, []Command{
		{SQL: "CREATE DATABASE `sh``op` COLLATE `utf8mb4_bin`;\n", TransactionSuppressed: true},
		{SQL: "DROP DATABASE `shop`;\n", TransactionSuppressed: true},
	}, cmds)
}

func TestSQLiteGenerator(t *testing.T) {
	g := NewSQLiteGenerator()

	cmds, err := g.Generate([]Operation{
		EnsureSchemaOperation{Name: "main"},
		SQLOperation{SQL: "CREATE TABLE \"t\" (id TEXT PRIMARY KEY);\n\n"},
	})
	require.NoError(t, err)
	assert.Equal(t, []Command{{SQL: "CREATE TABLE \"t\" (id TEXT PRIMARY KEY);\n"}}, cmds)

	_, err = g.Generate([]Operation{CreateDatabaseOperation{Name: "x"}})
	assert.ErrorIs(t, err, ErrOperationNotSupported)

	_, err = g.Generate([]Operation{DropDatabaseOperation{Name: "x"}})
	assert.ErrorIs(t, err, ErrOperationNotSupported)
}

func TestGenerateSQL_SkipsEmpty(t *testing.T) {
	cmds, err := NewPostgresGenerator().Generate([]Operation{SQLOperation{SQL: "  \n"}})
	require.NoError(t, err)
	assert.Empty(t, cmds)
}

func TestHelpers_DelimitIdentifier(t *testing.T) {
	tests := []struct {
		helper SQLHelper
		in     string
		want   string
	}{
		{PostgresHelper(), "users", `"users"`},
		{PostgresHelper(), `we"ird`, `"we""ird"`},
		{MySQLHelper(), "users", "`users`"},
		{MySQLHelper(), "we`ird", "`we``ird`"},
		{SQLiteHelper(), "users", `"users"`},
		{SQLiteHelper(), `we"ird`, `"we""ird"`},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.helper.DelimitIdentifier(tt.in))
		assert.Equal(t, ";", tt.helper.StatementTerminator())
	}
}

func TestCommandListBuilder(t *testing.T) {
	b := NewCommandListBuilder()
	b.Append("SELECT ").Append("1").AppendLine(";").EndStatement(false)
	b.EndStatement(true)
	b.AppendLine("SELECT 2;").EndStatement(true)

	cmds := b.Commands()
	assert.Equal(t, []Command{
		{SQL: "SELECT 1;\n"},
		{SQL: "SELECT 2;\n", TransactionSuppressed: true},
	}, cmds)

	cmds[0].SQL = "changed"
	assert.Equal(t, "SELECT 1;\n", b.Commands()[0].SQL)
}
