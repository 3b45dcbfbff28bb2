package sqlgen

import "strings"

// Command is one SQL statement ready for execution.
type Command struct {
	SQL string
	// TransactionSuppressed commands must run outside any transaction.
	TransactionSuppressed bool
}

// CommandListBuilder accumulates SQL text and splits it into commands.
type CommandListBuilder struct {
	current  strings.Builder
	commands []Command
}

// NewCommandListBuilder creates an empty builder.
func NewCommandListBuilder() *CommandListBuilder {
	return &CommandListBuilder{}
}

// Append adds text to the current statement.
func (b *CommandListBuilder) Append(s string) *CommandListBuilder {
	b.current.WriteString(s)
	return b
}

// AppendLine adds text followed by a newline to the current statement.
func (b *CommandListBuilder) AppendLine(s string) *CommandListBuilder {
	b.current.WriteString(s)
	b.current.WriteByte('\n')
	return b
}

// EndStatement closes the current statement. Empty statements are dropped.
func (b *CommandListBuilder) EndStatement(suppressTransaction bool) *CommandListBuilder {
	sql := b.current.String()
	b.current.Reset()
	if strings.TrimSpace(sql) == "" {
		return b
	}
	b.commands = append(b.commands, Command{SQL: sql, TransactionSuppressed: suppressTransaction})
	return b
}

// Commands returns the completed commands.
func (b *CommandListBuilder) Commands() []Command {
	out := make([]Command, len(b.commands))
	copy(out, b.commands)
	return out
}
