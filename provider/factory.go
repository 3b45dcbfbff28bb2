package provider

import (
	"context"
	"errors"
	"time"
)

// DatabaseOptions is the provider choice loaded from configuration.
type DatabaseOptions struct {
	Kind             Kind
	ConnectionString string

	// Pool limits. Zero values keep the driver defaults.
	MaxConnections int
	MaxIdleTime    time.Duration
	ConnectTimeout time.Duration
}

// ContextFactory configures builders for one database and hands them to a
// constructor that produces a ready-to-use context of type T.
type ContextFactory[T any] struct {
	options            DatabaseOptions
	migrationsAssembly string
	schemaPrefix       string
	newContext         func(ctx context.Context, b *OptionsBuilder) (T, error)
}

// NewContextFactory creates a factory. newContext receives a configured builder.
func NewContextFactory[T any](
	options DatabaseOptions,
	migrationsAssembly, schemaPrefix string,
	newContext func(ctx context.Context, b *OptionsBuilder) (T, error),
) *ContextFactory[T] {
	return &ContextFactory[T]{
		options:            options,
		migrationsAssembly: migrationsAssembly,
		schemaPrefix:       schemaPrefix,
		newContext:         newContext,
	}
}

// ConfigureBuilder selects the configured provider on b and applies the
// pool limits.
func (f *ContextFactory[T]) ConfigureBuilder(b *OptionsBuilder) error {
	err := Configure(b, f.options.Kind, ConnectionConfig{
		ConnectionString:   f.options.ConnectionString,
		MigrationsAssembly: f.migrationsAssembly,
		SchemaPrefix:       f.schemaPrefix,
	})
	if err != nil {
		return err
	}
	b.WithPool(f.options.MaxConnections, f.options.MaxIdleTime, f.options.ConnectTimeout)
	return nil
}

// CreateContext configures a fresh builder and builds a context from it.
func (f *ContextFactory[T]) CreateContext(ctx context.Context) (T, error) {
	var zero T
	if f.newContext == nil {
		return zero, errors.New("context factory has no constructor")
	}

	b := NewOptionsBuilder()
	if err := f.ConfigureBuilder(b); err != nil {
		return zero, err
	}
	return f.newContext(ctx, b)
}
