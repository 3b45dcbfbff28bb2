package provider

import (
	"time"

	"github.com/satishbabariya/dbprovider/runtime"
)

// ServiceKey names a replaceable runtime service.
type ServiceKey string

// MigrationsSQLGeneratorService is the key of the service that turns migration
// operations into SQL commands. Its value is a sqlgen.Generator.
const MigrationsSQLGeneratorService ServiceKey = "migrations-sql-generator"

// Options is the provider configuration consumed by the runtime.
type Options struct {
	Kind                   Kind
	ConnectionString       string
	MigrationsAssembly     string
	MigrationsHistoryTable string
	Retry                  runtime.RetryPolicy

	MaxConnections int
	MaxIdleTime    time.Duration
	ConnectTimeout time.Duration
}

// OptionsBuilder collects provider options and service overrides before a
// context is created. It is owned by a single caller and is not safe for
// concurrent use.
type OptionsBuilder struct {
	options    Options
	configured bool
	services   map[ServiceKey]any
}

// NewOptionsBuilder creates an empty builder.
func NewOptionsBuilder() *OptionsBuilder {
	return &OptionsBuilder{services: make(map[ServiceKey]any)}
}

// Options returns a copy of the configured options.
func (b *OptionsBuilder) Options() Options {
	return b.options
}

// IsConfigured reports whether a provider has been selected.
func (b *OptionsBuilder) IsConfigured() bool {
	return b.configured
}

// ReplaceService registers svc under key, replacing any previous registration.
func (b *OptionsBuilder) ReplaceService(key ServiceKey, svc any) *OptionsBuilder {
	if b.services == nil {
		b.services = make(map[ServiceKey]any)
	}
	b.services[key] = svc
	return b
}

// Service returns the service registered under key.
func (b *OptionsBuilder) Service(key ServiceKey) (any, bool) {
	svc, ok := b.services[key]
	return svc, ok
}

// WithPool sets connection pool limits. Zero values keep the driver defaults.
func (b *OptionsBuilder) WithPool(maxConnections int, maxIdleTime, connectTimeout time.Duration) *OptionsBuilder {
	b.options.MaxConnections = maxConnections
	b.options.MaxIdleTime = maxIdleTime
	b.options.ConnectTimeout = connectTimeout
	return b
}

func (b *OptionsBuilder) use(kind Kind, connectionString string, configure func(*RelationalOptionsBuilder)) *OptionsBuilder {
	b.options.Kind = kind
	b.options.ConnectionString = connectionString
	b.configured = true
	if configure != nil {
		configure(&RelationalOptionsBuilder{options: &b.options})
	}
	return b
}

// UseSQLite selects the SQLite provider.
func (b *OptionsBuilder) UseSQLite(connectionString string, configure func(*RelationalOptionsBuilder)) *OptionsBuilder {
	return b.use(SQLite, connectionString, configure)
}

// UsePostgres selects the PostgreSQL provider.
func (b *OptionsBuilder) UsePostgres(connectionString string, configure func(*RelationalOptionsBuilder)) *OptionsBuilder {
	return b.use(Postgres, connectionString, configure)
}

// UseMySQL selects the MySQL provider.
func (b *OptionsBuilder) UseMySQL(connectionString string, configure func(*RelationalOptionsBuilder)) *OptionsBuilder {
	return b.use(MySQL, connectionString, configure)
}

// RelationalOptionsBuilder sets the provider-specific options inside a Use* call.
type RelationalOptionsBuilder struct {
	options *Options
}

// MigrationsAssembly names the registered migration set to apply.
func (r *RelationalOptionsBuilder) MigrationsAssembly(name string) *RelationalOptionsBuilder {
	r.options.MigrationsAssembly = name
	return r
}

// MigrationsHistoryTable overrides the name of the migration history table.
func (r *RelationalOptionsBuilder) MigrationsHistoryTable(name string) *RelationalOptionsBuilder {
	r.options.MigrationsHistoryTable = name
	return r
}

// EnableRetryOnFailure retries transient failures up to maxAttempts times.
func (r *RelationalOptionsBuilder) EnableRetryOnFailure(maxAttempts int) *RelationalOptionsBuilder {
	r.options.Retry = runtime.NewRetryPolicy(maxAttempts)
	return r
}
