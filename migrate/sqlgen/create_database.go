package sqlgen

// CreateDatabaseGenerator wraps a PostgreSQL generator and replaces how
// CREATE DATABASE is emitted. Every other operation goes to the base generator.
//
// PostgreSQL does not use a btree index on a text column (primary keys
// included) for lookups when the database locale is not "C", because the
// locale-aware comparison does not match the index order. New databases are
// therefore always created from template0 with the C locale and UTF8 encoding,
// whatever the server or host locale is.
type CreateDatabaseGenerator struct {
	base OperationGenerator
}

// NewCreateDatabaseGenerator wraps base.
func NewCreateDatabaseGenerator(base OperationGenerator) *CreateDatabaseGenerator {
	return &CreateDatabaseGenerator{base: base}
}

// Helper returns the base generator's SQL helper.
func (g *CreateDatabaseGenerator) Helper() SQLHelper {
	return g.base.Helper()
}

// Generate emits the commands for ops.
func (g *CreateDatabaseGenerator) Generate(ops []Operation) ([]Command, error) {
	return generate(g, ops)
}

// GenerateOperation emits CREATE DATABASE itself and forwards the rest.
func (g *CreateDatabaseGenerator) GenerateOperation(op Operation, b *CommandListBuilder) error {
	create, ok := op.(CreateDatabaseOperation)
	if !ok {
		return g.base.GenerateOperation(op, b)
	}

	h := g.base.Helper()
	b.Append("CREATE DATABASE ").Append(h.DelimitIdentifier(create.Name))
	b.Append(" TEMPLATE ").Append(h.DelimitIdentifier("template0"))
	b.Append(" LC_CTYPE ").Append(h.DelimitIdentifier("C"))
	b.Append(" LC_COLLATE ").Append(h.DelimitIdentifier("C"))
	b.Append(" ENCODING ").Append(h.DelimitIdentifier("UTF8"))

	if create.Tablespace != "" {
		b.Append(" TABLESPACE ").Append(h.DelimitIdentifier(create.Tablespace))
	}

	b.AppendLine(h.StatementTerminator())
	b.EndStatement(true)
	return nil
}

var _ OperationGenerator = (*CreateDatabaseGenerator)(nil)
