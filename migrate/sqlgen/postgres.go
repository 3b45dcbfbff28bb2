package sqlgen

// PostgresGenerator is the default PostgreSQL migrations SQL generator.
type PostgresGenerator struct {
	helper SQLHelper
}

// NewPostgresGenerator creates a PostgreSQL generator.
func NewPostgresGenerator() *PostgresGenerator {
	return &PostgresGenerator{helper: PostgresHelper()}
}

// Helper returns the PostgreSQL SQL helper.
func (g *PostgresGenerator) Helper() SQLHelper {
	return g.helper
}

// Generate emits the commands for ops.
func (g *PostgresGenerator) Generate(ops []Operation) ([]Command, error) {
	return generate(g, ops)
}

// GenerateOperation emits the commands for one operation.
func (g *PostgresGenerator) GenerateOperation(op Operation, b *CommandListBuilder) error {
	switch op := op.(type) {
	case CreateDatabaseOperation:
		g.createDatabase(op, b)
	case DropDatabaseOperation:
		b.Append("DROP DATABASE ").
			Append(g.helper.DelimitIdentifier(op.Name)).
			AppendLine(g.helper.StatementTerminator())
		b.EndStatement(true)
	case EnsureSchemaOperation:
		// public always exists and may not be owned by the migrating role.
		if op.Name == "" || op.Name == "public" {
			return nil
		}
		b.Append("CREATE SCHEMA IF NOT EXISTS ").
			Append(g.helper.DelimitIdentifier(op.Name)).
			AppendLine(g.helper.StatementTerminator())
		b.EndStatement(false)
	case DropSchemaOperation:
		b.Append("DROP SCHEMA IF EXISTS ").
			Append(g.helper.DelimitIdentifier(op.Name)).
			Append(" CASCADE").
			AppendLine(g.helper.StatementTerminator())
		b.EndStatement(false)
	case SQLOperation:
		generateSQL(g.helper, op, b)
	default:
		return unsupported(op)
	}
	return nil
}

func (g *PostgresGenerator) createDatabase(op CreateDatabaseOperation, b *CommandListBuilder) {
	b.Append("CREATE DATABASE ").Append(g.helper.DelimitIdentifier(op.Name))

	if op.Template != "" {
		b.Append(" TEMPLATE ").Append(g.helper.DelimitIdentifier(op.Template))
	}
	if op.Collation != "" {
		b.Append(" LC_COLLATE ").Append(g.helper.DelimitIdentifier(op.Collation))
	}
	if op.Tablespace != "" {
		b.Append(" TABLESPACE ").Append(g.helper.DelimitIdentifier(op.Tablespace))
	}

	b.AppendLine(g.helper.StatementTerminator())
	b.EndStatement(true)
}

var _ OperationGenerator = (*PostgresGenerator)(nil)
