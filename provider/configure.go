package provider

import (
	"strconv"

	"github.com/satishbabariya/dbprovider/internal/debug"
	"github.com/satishbabariya/dbprovider/migrate/sqlgen"
)

// serverRetryAttempts is the retry budget for client-server engines.
const serverRetryAttempts = 10

// ConnectionConfig is the caller-owned connection input.
type ConnectionConfig struct {
	ConnectionString   string
	MigrationsAssembly string
	// SchemaPrefix, when set, becomes the migration history table name.
	SchemaPrefix string
}

// Settings is the provider configuration derived from a Kind and a
// ConnectionConfig. It is a plain value; Apply writes it into a builder.
type Settings struct {
	Kind                   Kind
	ConnectionString       string
	MigrationsAssembly     string
	MigrationsHistoryTable string
	RetryAttempts          int
	ReplaceSQLGenerator    bool
}

// Resolve derives the settings for kind. It has no side effects.
func Resolve(kind Kind, cfg ConnectionConfig) (Settings, error) {
	s := Settings{
		Kind:                   kind,
		ConnectionString:       cfg.ConnectionString,
		MigrationsAssembly:     cfg.MigrationsAssembly,
		MigrationsHistoryTable: cfg.SchemaPrefix,
	}

	switch kind {
	case SQLite:
	case Postgres:
		s.RetryAttempts = serverRetryAttempts
		s.ReplaceSQLGenerator = true
	case MySQL:
		s.RetryAttempts = serverRetryAttempts
	default:
		return Settings{}, &ConfigurationError{
			Field: "database.type",
			Value: strconv.Itoa(int(kind)),
			Err:   ErrInvalidConfiguration,
		}
	}

	return s, nil
}

// Apply writes s into b.
func (s Settings) Apply(b *OptionsBuilder) *OptionsBuilder {
	configure := func(o *RelationalOptionsBuilder) {
		o.MigrationsAssembly(s.MigrationsAssembly)
		if s.RetryAttempts > 0 {
			o.EnableRetryOnFailure(s.RetryAttempts)
		}
		if s.MigrationsHistoryTable != "" {
			o.MigrationsHistoryTable(s.MigrationsHistoryTable)
		}
	}

	switch s.Kind {
	case SQLite:
		b.UseSQLite(s.ConnectionString, configure)
	case Postgres:
		b.UsePostgres(s.ConnectionString, configure)
	case MySQL:
		b.UseMySQL(s.ConnectionString, configure)
	}

	if s.ReplaceSQLGenerator {
		b.ReplaceService(MigrationsSQLGeneratorService, sqlgen.NewCreateDatabaseGenerator(sqlgen.NewPostgresGenerator()))
	}

	debug.Debug("configured database provider",
		"kind", s.Kind.String(),
		"assembly", s.MigrationsAssembly,
		"history_table", s.MigrationsHistoryTable,
		"retry_attempts", s.RetryAttempts,
		"replace_sql_generator", s.ReplaceSQLGenerator,
	)
	return b
}

// Configure selects the provider for kind on b. On error b is left untouched.
func Configure(b *OptionsBuilder, kind Kind, cfg ConnectionConfig) error {
	s, err := Resolve(kind, cfg)
	if err != nil {
		return err
	}
	s.Apply(b)
	return nil
}

// DefaultSQLGenerator returns the unmodified migrations SQL generator of kind.
func DefaultSQLGenerator(kind Kind) (sqlgen.Generator, error) {
	switch kind {
	case SQLite:
		return sqlgen.NewSQLiteGenerator(), nil
	case Postgres:
		return sqlgen.NewPostgresGenerator(), nil
	case MySQL:
		return sqlgen.NewMySQLGenerator(), nil
	default:
		return nil, &ConfigurationError{Field: "database.type", Value: strconv.Itoa(int(kind)), Err: ErrInvalidConfiguration}
	}
}

// SQLGenerator returns the generator registered on b, falling back to the
// provider default.
func SQLGenerator(b *OptionsBuilder) (sqlgen.Generator, error) {
	if svc, ok := b.Service(MigrationsSQLGeneratorService); ok {
		if g, ok := svc.(sqlgen.Generator); ok {
			return g, nil
		}
	}
	return DefaultSQLGenerator(b.Options().Kind)
}
