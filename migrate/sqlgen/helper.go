package sqlgen

import (
	"strings"

	"github.com/lib/pq"
)

// SQLHelper holds the dialect rules for embedding names in SQL.
type SQLHelper interface {
	// DelimitIdentifier quotes name so it is always read as one identifier.
	DelimitIdentifier(name string) string
	// StatementTerminator ends a statement.
	StatementTerminator() string
}

type postgresHelper struct{}

func (postgresHelper) DelimitIdentifier(name string) string { return pq.QuoteIdentifier(name) }
func (postgresHelper) StatementTerminator() string          { return ";" }

type mysqlHelper struct{}

func (mysqlHelper) DelimitIdentifier(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}
func (mysqlHelper) StatementTerminator() string { return ";" }

type sqliteHelper struct{}

func (sqliteHelper) DelimitIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
func (sqliteHelper) StatementTerminator() string { return ";" }

// PostgresHelper returns the PostgreSQL helper.
func PostgresHelper() SQLHelper { return postgresHelper{} }

// MySQLHelper returns the MySQL helper.
func MySQLHelper() SQLHelper { return mysqlHelper{} }

// SQLiteHelper returns the SQLite helper.
func SQLiteHelper() SQLHelper { return sqliteHelper{} }
