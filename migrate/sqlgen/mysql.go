package sqlgen

// MySQLGenerator is the default MySQL migrations SQL generator.
// MySQL treats schemas and databases as the same thing, so schema
// operations emit nothing.
type MySQLGenerator struct {
	helper SQLHelper
}

// NewMySQLGenerator creates a MySQL generator.
func NewMySQLGenerator() *MySQLGenerator {
	return &MySQLGenerator{helper: MySQLHelper()}
}

// Helper returns the MySQL SQL helper.
func (g *MySQLGenerator) Helper() SQLHelper {
	return g.helper
}

// Generate emits the commands for ops.
func (g *MySQLGenerator) Generate(ops []Operation) ([]Command, error) {
	return generate(g, ops)
}

// GenerateOperation emits the commands for one operation.
func (g *MySQLGenerator) GenerateOperation(op Operation, b *CommandListBuilder) error {
	switch op := op.(type) {
	case CreateDatabaseOperation:
		b.Append("CREATE DATABASE ").Append(g.helper.DelimitIdentifier(op.Name))
		if op.Collation != "" {
			b.Append(" COLLATE ").Append(g.helper.DelimitIdentifier(op.Collation))
		}
		b.AppendLine(g.helper.StatementTerminator())
		b.EndStatement(true)
	case DropDatabaseOperation:
		b.Append("DROP DATABASE ").
			Append(g.helper.DelimitIdentifier(op.Name)).
			AppendLine(g.helper.StatementTerminator())
		b.EndStatement(true)
	case EnsureSchemaOperation, DropSchemaOperation:
	case SQLOperation:
		generateSQL(g.helper, op, b)
	default:
		return unsupported(op)
	}
	return nil
}

var _ OperationGenerator = (*MySQLGenerator)(nil)
