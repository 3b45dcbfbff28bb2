package sqlgen

// SQLiteGenerator is the default SQLite migrations SQL generator. A SQLite
// database is a file, so database operations are not supported and schema
// operations emit nothing.
type SQLiteGenerator struct {
	helper SQLHelper
}

// NewSQLiteGenerator creates a SQLite generator.
func NewSQLiteGenerator() *SQLiteGenerator {
	return &SQLiteGenerator{helper: SQLiteHelper()}
}

// Helper returns the SQLite SQL helper.
func (g *SQLiteGenerator) Helper() SQLHelper {
	return g.helper
}

// Generate emits the commands for ops.
func (g *SQLiteGenerator) Generate(ops []Operation) ([]Command, error) {
	return generate(g, ops)
}

// GenerateOperation emits the commands for one operation.
func (g *SQLiteGenerator) GenerateOperation(op Operation, b *CommandListBuilder) error {
	switch op := op.(type) {
	case EnsureSchemaOperation, DropSchemaOperation:
	case SQLOperation:
		generateSQL(g.helper, op, b)
	default:
		return unsupported(op)
	}
	return nil
}

var _ OperationGenerator = (*SQLiteGenerator)(nil)
