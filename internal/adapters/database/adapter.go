// Package database opens connections for the configured provider.
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/satishbabariya/dbprovider/internal/debug"
	"github.com/satishbabariya/dbprovider/provider"
	"github.com/satishbabariya/dbprovider/runtime"
)

// ErrNotConnected is returned when the adapter has no open connection.
var ErrNotConnected = errors.New("database not connected")

// ErrNoServer is returned for server operations on a file-based provider.
var ErrNoServer = errors.New("provider has no database server")

// engine holds the driver-specific parts of an adapter.
type engine interface {
	driverName() string
	open(connectionString string) (*sql.DB, error)
	databaseName(connectionString string) (string, error)
	// openServer connects to the server without selecting the target database.
	openServer(connectionString string) (*sql.DB, error)
	afterConnect(ctx context.Context, db *sql.DB) error
	maxOpenConns(configured int) int
	// connMaxIdleTime returns the idle timeout to apply, 0 for none.
	connMaxIdleTime(configured time.Duration, connectionString string) time.Duration
}

// Adapter owns the connection for one configured provider.
type Adapter struct {
	options provider.Options
	engine  engine
	db      *sqlx.DB
}

// NewAdapter creates an adapter for the provider selected in options.
func NewAdapter(options provider.Options) (*Adapter, error) {
	var e engine
	switch options.Kind {
	case provider.SQLite:
		e = sqliteEngine{}
	case provider.Postgres:
		e = postgresEngine{}
	case provider.MySQL:
		e = mysqlEngine{}
	default:
		return nil, &provider.ConfigurationError{Field: "database.type", Value: options.Kind.String(), Err: provider.ErrInvalidConfiguration}
	}
	if options.ConnectionString == "" {
		return nil, &provider.ConfigurationError{Field: "database.connection_string", Err: provider.ErrInvalidConfiguration}
	}

	return &Adapter{options: options, engine: e}, nil
}

// Kind returns the provider kind.
func (a *Adapter) Kind() provider.Kind {
	return a.options.Kind
}

// DriverName returns the database/sql driver name.
func (a *Adapter) DriverName() string {
	return a.engine.driverName()
}

// DatabaseName returns the database named by the connection string. For
// SQLite it is the database file path, empty for in-memory databases.
func (a *Adapter) DatabaseName() (string, error) {
	return a.engine.databaseName(a.options.ConnectionString)
}

// Connect opens and verifies the connection, retrying transient failures.
func (a *Adapter) Connect(ctx context.Context) error {
	if a.db != nil {
		return nil
	}

	db, err := a.connect(ctx, a.engine.open)
	if err != nil {
		return err
	}
	if err := a.engine.afterConnect(ctx, db.DB); err != nil {
		db.Close()
		return err
	}

	a.db = db
	debug.Debug("connected to database", "kind", a.options.Kind.String())
	return nil
}

// OpenServer connects to the database server without selecting the
// configured database. The caller closes the returned connection.
func (a *Adapter) OpenServer(ctx context.Context) (*sqlx.DB, error) {
	return a.connect(ctx, a.engine.openServer)
}

func (a *Adapter) connect(ctx context.Context, open func(string) (*sql.DB, error)) (*sqlx.DB, error) {
	db, err := open(a.options.ConnectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if n := a.engine.maxOpenConns(a.options.MaxConnections); n > 0 {
		db.SetMaxOpenConns(n)
		db.SetMaxIdleConns(max(n/2, 1))
	}
	if d := a.engine.connMaxIdleTime(a.options.MaxIdleTime, a.options.ConnectionString); d > 0 {
		db.SetConnMaxIdleTime(d)
	}

	err = runtime.Retry(ctx, a.options.Retry, func(ctx context.Context) error {
		if a.options.ConnectTimeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, a.options.ConnectTimeout)
			defer cancel()
		}
		return db.PingContext(ctx)
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return sqlx.NewDb(db, a.engine.driverName()), nil
}

// DB returns the open connection.
func (a *Adapter) DB() (*sqlx.DB, error) {
	if a.db == nil {
		return nil, ErrNotConnected
	}
	return a.db, nil
}

// Disconnect closes the connection.
func (a *Adapter) Disconnect(ctx context.Context) error {
	if a.db == nil {
		return nil
	}
	err := a.db.Close()
	a.db = nil
	return err
}
