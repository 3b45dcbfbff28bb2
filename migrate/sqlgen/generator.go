// Package sqlgen generates migration SQL for the supported providers.
package sqlgen

import (
	"errors"
	"fmt"
	"strings"
)

// ErrOperationNotSupported is returned when a provider cannot express an operation.
var ErrOperationNotSupported = errors.New("migration operation not supported")

// Generator turns migration operations into SQL commands.
type Generator interface {
	Generate(ops []Operation) ([]Command, error)
	Helper() SQLHelper
}

// OperationGenerator emits the SQL for a single operation. Generators that
// wrap another one forward the operations they do not handle to it.
type OperationGenerator interface {
	Generator
	GenerateOperation(op Operation, b *CommandListBuilder) error
}

func generate(g OperationGenerator, ops []Operation) ([]Command, error) {
	b := NewCommandListBuilder()
	for i, op := range ops {
		if err := g.GenerateOperation(op, b); err != nil {
			return nil, fmt.Errorf("operation %d (%T): %w", i, op, err)
		}
	}
	return b.Commands(), nil
}

func unsupported(op Operation) error {
	return fmt.Errorf("%w: %T", ErrOperationNotSupported, op)
}

// generateSQL emits raw SQL, adding the terminator when it is missing.
func generateSQL(h SQLHelper, op SQLOperation, b *CommandListBuilder) {
	sql := strings.TrimRight(op.SQL, " \t\r\n")
	if sql == "" {
		return
	}
	b.Append(sql)
	if !strings.HasSuffix(sql, h.StatementTerminator()) {
		b.Append(h.StatementTerminator())
	}
	b.AppendLine("")
	b.EndStatement(op.SuppressTransaction)
}
