package commands

import (
	"net/url"
	"regexp"
	"strconv"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5"
	"github.com/spf13/cobra"

	"github.com/satishbabariya/dbprovider/internal/ui"
	"github.com/satishbabariya/dbprovider/migrate/history"
	"github.com/satishbabariya/dbprovider/provider"
)

func newConfigCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the resolved configuration",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the provider settings derived from the configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigShow(a)
		},
	})
	return cmd
}

func runConfigShow(a *app) error {
	opts, err := a.cfg.DatabaseOptions()
	if err != nil {
		return err
	}
	settings, err := provider.Resolve(opts.Kind, provider.ConnectionConfig{
		ConnectionString:   opts.ConnectionString,
		MigrationsAssembly: a.cfg.Migrations.Assembly,
		SchemaPrefix:       a.cfg.Migrations.SchemaPrefix,
	})
	if err != nil {
		return err
	}

	historyTable := settings.MigrationsHistoryTable
	if historyTable == "" {
		historyTable = history.DefaultTableName + " (default)"
	}
	generator := "default"
	if settings.ReplaceSQLGenerator {
		generator = "create database override (template0, C collation, UTF8)"
	}

	return ui.PrintTable([]string{"Setting", "Value"}, [][]string{
		{"Provider", settings.Kind.String()},
		{"Connection", redact(settings.Kind, settings.ConnectionString)},
		{"Migrations assembly", settings.MigrationsAssembly},
		{"History table", historyTable},
		{"Retry attempts", strconv.Itoa(settings.RetryAttempts)},
		{"SQL generator", generator},
		{"Max connections", strconv.Itoa(a.cfg.Database.MaxConnections)},
		{"Max idle time", a.cfg.Database.MaxIdleTime.String()},
		{"Connect timeout", a.cfg.Database.ConnectTimeout.String()},
	})
}

// redactedPassword replaces passwords in displayed connection strings.
const redactedPassword = "xxxxx"

// pgPasswordPattern matches the password of a key/value connection string,
// quoted or not.
var pgPasswordPattern = regexp.MustCompile(`(?i)(\bpassword\s*=\s*)('(?:[^'\\]|\\.)*'|\S+)`)

// redact hides the password in a connection string.
func redact(kind provider.Kind, conn string) string {
	switch kind {
	case provider.MySQL:
		cfg, err := mysql.ParseDSN(conn)
		if err != nil || cfg.Passwd == "" {
			return conn
		}
		cfg.Passwd = redactedPassword
		return cfg.FormatDSN()
	case provider.Postgres:
		return redactPostgres(conn)
	}
	return conn
}

func redactPostgres(conn string) string {
	// A parse failure still gets the textual redaction below.
	if cfg, err := pgx.ParseConfig(conn); err == nil && cfg.Password == "" {
		return conn
	}

	if u, err := url.Parse(conn); err == nil && (u.Scheme == "postgres" || u.Scheme == "postgresql") {
		if q := u.Query(); q.Has("password") {
			q.Set("password", redactedPassword)
			u.RawQuery = q.Encode()
		}
		return u.Redacted()
	}
	return pgPasswordPattern.ReplaceAllString(conn, "${1}"+redactedPassword)
}
