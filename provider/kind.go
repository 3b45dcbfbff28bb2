// Package provider selects and configures the database provider used by the
// migration runtime.
package provider

import (
	"fmt"
	"strings"
)

// Kind identifies a supported database engine.
type Kind int

const (
	// SQLite is the file-based embedded engine.
	SQLite Kind = iota + 1
	// Postgres is PostgreSQL.
	Postgres
	// MySQL is MySQL or MariaDB.
	MySQL
)

var kindNames = map[Kind]string{
	SQLite:   "sqlite",
	Postgres: "postgres",
	MySQL:    "mysql",
}

// String returns the canonical lower-case name of the kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Valid reports whether k is one of the supported kinds.
func (k Kind) Valid() bool {
	_, ok := kindNames[k]
	return ok
}

// ParseKind converts a configured provider name into a Kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sqlite", "sqlite3":
		return SQLite, nil
	case "postgres", "postgresql", "npgsql":
		return Postgres, nil
	case "mysql", "mariadb":
		return MySQL, nil
	default:
		return 0, &ConfigurationError{Field: "database.type", Value: s, Err: ErrInvalidConfiguration}
	}
}
