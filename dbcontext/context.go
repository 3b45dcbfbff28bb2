// Package dbcontext builds ready-to-use database contexts from configured
// provider options and runs their migrations.
package dbcontext

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/afero"

	"github.com/satishbabariya/dbprovider/internal/adapters/database"
	"github.com/satishbabariya/dbprovider/internal/debug"
	"github.com/satishbabariya/dbprovider/migrate"
	"github.com/satishbabariya/dbprovider/migrate/executor"
	"github.com/satishbabariya/dbprovider/migrate/history"
	"github.com/satishbabariya/dbprovider/migrate/sqlgen"
	"github.com/satishbabariya/dbprovider/provider"
)

// Context is an open unit of work against one configured database.
type Context struct {
	options   provider.Options
	adapter   *database.Adapter
	generator sqlgen.Generator
	tracker   *history.Tracker
	registry  *migrate.Registry
	fs        afero.Fs
}

// Option customises a Context.
type Option func(*Context)

// WithRegistry looks migrations up in r instead of the default registry.
func WithRegistry(r *migrate.Registry) Option {
	return func(c *Context) { c.registry = r }
}

// WithFs sets the filesystem used for SQLite database files.
func WithFs(fs afero.Fs) Option {
	return func(c *Context) { c.fs = fs }
}

// New creates a context from a configured builder. The connection is opened
// lazily.
func New(_ context.Context, b *provider.OptionsBuilder, opts ...Option) (*Context, error) {
	if !b.IsConfigured() {
		return nil, fmt.Errorf("%w: no database provider selected", provider.ErrInvalidConfiguration)
	}

	generator, err := provider.SQLGenerator(b)
	if err != nil {
		return nil, err
	}

	options := b.Options()
	adapter, err := database.NewAdapter(options)
	if err != nil {
		return nil, err
	}

	c := &Context{
		options:   options,
		adapter:   adapter,
		generator: generator,
		tracker:   history.NewTracker(options.MigrationsHistoryTable, generator.Helper()),
		registry:  migrate.Default(),
		fs:        afero.NewOsFs(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// NewFactory returns a factory that creates contexts for one database.
func NewFactory(options provider.DatabaseOptions, migrationsAssembly, schemaPrefix string, opts ...Option) *provider.ContextFactory[*Context] {
	return provider.NewContextFactory(options, migrationsAssembly, schemaPrefix,
		func(ctx context.Context, b *provider.OptionsBuilder) (*Context, error) {
			return New(ctx, b, opts...)
		})
}

// Options returns the provider options the context was built from.
func (c *Context) Options() provider.Options {
	return c.options
}

// Generator returns the migrations SQL generator in use.
func (c *Context) Generator() sqlgen.Generator {
	return c.generator
}

// HistoryTable returns the name of the migration history table.
func (c *Context) HistoryTable() string {
	return c.tracker.TableName()
}

// DB returns the open connection, connecting first if needed.
func (c *Context) DB(ctx context.Context) (*sqlx.DB, error) {
	if err := c.adapter.Connect(ctx); err != nil {
		return nil, err
	}
	return c.adapter.DB()
}

// Close releases the connection.
func (c *Context) Close(ctx context.Context) error {
	return c.adapter.Disconnect(ctx)
}

// CreateDatabaseCommands returns the commands that create the configured
// database. An empty tablespace leaves the clause out.
func (c *Context) CreateDatabaseCommands(tablespace string) ([]sqlgen.Command, error) {
	name, err := c.adapter.DatabaseName()
	if err != nil {
		return nil, err
	}
	return c.generator.Generate([]sqlgen.Operation{
		sqlgen.CreateDatabaseOperation{Name: name, Tablespace: tablespace},
	})
}

// Exists reports whether the configured database exists.
func (c *Context) Exists(ctx context.Context) (bool, error) {
	if c.options.Kind == provider.SQLite {
		path, _ := c.adapter.DatabaseName()
		if path == "" {
			return true, nil
		}
		return afero.Exists(c.fs, path)
	}

	name, err := c.adapter.DatabaseName()
	if err != nil {
		return false, err
	}
	server, err := c.adapter.OpenServer(ctx)
	if err != nil {
		return false, err
	}
	defer server.Close()

	return databaseExists(ctx, server, c.options.Kind, name)
}

func databaseExists(ctx context.Context, server *sqlx.DB, kind provider.Kind, name string) (bool, error) {
	var query string
	switch kind {
	case provider.Postgres:
		query = "SELECT COUNT(*) FROM pg_database WHERE datname = ?"
	case provider.MySQL:
		query = "SELECT COUNT(*) FROM information_schema.schemata WHERE schema_name = ?"
	default:
		return false, fmt.Errorf("%w: %s", database.ErrNoServer, kind)
	}

	var n int
	if err := server.GetContext(ctx, &n, server.Rebind(query), name); err != nil {
		return false, fmt.Errorf("failed to check database %s: %w", name, err)
	}
	return n > 0, nil
}

// EnsureCreated creates the configured database when it does not exist and
// reports whether it did. SQLite databases are created by connecting.
func (c *Context) EnsureCreated(ctx context.Context, tablespace string) (bool, error) {
	exists, err := c.Exists(ctx)
	if err != nil {
		return false, err
	}

	if c.options.Kind == provider.SQLite {
		if _, err := c.DB(ctx); err != nil {
			return false, err
		}
		return !exists, nil
	}
	if exists {
		return false, nil
	}

	cmds, err := c.CreateDatabaseCommands(tablespace)
	if err != nil {
		return false, err
	}
	if err := c.execServer(ctx, cmds); err != nil {
		return false, err
	}

	debug.Info("created database", "kind", c.options.Kind.String())
	return true, nil
}

// EnsureDeleted drops the configured database when it exists and reports
// whether it did.
func (c *Context) EnsureDeleted(ctx context.Context) (bool, error) {
	exists, err := c.Exists(ctx)
	if err != nil || !exists {
		return false, err
	}
	if err := c.Close(ctx); err != nil {
		return false, err
	}

	name, err := c.adapter.DatabaseName()
	if err != nil {
		return false, err
	}

	if c.options.Kind == provider.SQLite {
		if name == "" {
			return false, nil
		}
		if err := c.fs.Remove(name); err != nil {
			return false, fmt.Errorf("failed to remove database file: %w", err)
		}
		return true, nil
	}

	cmds, err := c.generator.Generate([]sqlgen.Operation{sqlgen.DropDatabaseOperation{Name: name}})
	if err != nil {
		return false, err
	}
	if err := c.execServer(ctx, cmds); err != nil {
		return false, err
	}
	return true, nil
}

func (c *Context) execServer(ctx context.Context, cmds []sqlgen.Command) error {
	server, err := c.adapter.OpenServer(ctx)
	if err != nil {
		return err
	}
	defer server.Close()

	return executor.NewExecutor(server, c.options.Retry).Execute(ctx, cmds)
}
