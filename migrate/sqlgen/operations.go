package sqlgen

// Operation is a pending schema change. The set of variants is closed: only
// the types in this file implement it.
type Operation interface {
	operation()
}

// CreateDatabaseOperation creates a database on the server.
type CreateDatabaseOperation struct {
	Name       string
	Template   string
	Tablespace string
	Collation  string
}

// DropDatabaseOperation drops a database from the server.
type DropDatabaseOperation struct {
	Name string
}

// EnsureSchemaOperation creates a schema if it does not exist.
type EnsureSchemaOperation struct {
	Name string
}

// DropSchemaOperation drops a schema and everything in it.
type DropSchemaOperation struct {
	Name string
}

// SQLOperation runs raw SQL.
type SQLOperation struct {
	SQL                 string
	SuppressTransaction bool
}

func (CreateDatabaseOperation) operation() {}
func (DropDatabaseOperation) operation()   {}
func (EnsureSchemaOperation) operation()   {}
func (DropSchemaOperation) operation()     {}
func (SQLOperation) operation()            {}
