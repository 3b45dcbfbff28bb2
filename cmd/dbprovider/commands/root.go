// Package commands implements the dbprovider CLI commands.
package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/satishbabariya/dbprovider/dbcontext"
	"github.com/satishbabariya/dbprovider/internal/config"
	"github.com/satishbabariya/dbprovider/internal/debug"
	"github.com/satishbabariya/dbprovider/internal/ui"
	"github.com/satishbabariya/dbprovider/migrate"
)

// app carries the state shared by every command of one invocation.
type app struct {
	configFile string
	debug      bool
	cfg        *config.Config
}

// NewRootCommand creates the dbprovider root command.
func NewRootCommand(version, commit string) *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:           "dbprovider",
		Short:         "Configure and migrate SQLite, PostgreSQL and MySQL databases",
		Version:       fmt.Sprintf("%s (commit: %s)", version, commit),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			ui.Out = cmd.OutOrStdout()

			cfg, err := config.LoadConfig(a.configFile)
			if err != nil {
				return err
			}
			a.cfg = cfg
			debug.InitWriter(a.debug || cfg.Debug, cmd.ErrOrStderr())
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.configFile, "config", "", "config file (default is ./.dbprovider.yaml)")
	rootCmd.PersistentFlags().BoolVar(&a.debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(newConfigCommand(a))
	rootCmd.AddCommand(newProvidersCommand())
	rootCmd.AddCommand(newDBCommand(a))
	rootCmd.AddCommand(newMigrateCommand(a))

	return rootCmd
}

// registry returns the migrations the CLI can apply. A configured
// migrations directory replaces the compiled-in registrations.
func (a *app) registry() (*migrate.Registry, error) {
	dir := a.cfg.Migrations.Directory
	if dir == "" {
		return migrate.Default(), nil
	}

	migrations, err := migrate.LoadDir(config.AppFs, dir)
	if err != nil {
		return nil, err
	}
	r := migrate.NewRegistry()
	if a.cfg.Migrations.Assembly != "" {
		if err := r.Register(a.cfg.Migrations.Assembly, migrations...); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// openContext creates a database context for the configured provider.
// Callers must Close it.
func (a *app) openContext(ctx context.Context) (*dbcontext.Context, error) {
	opts, err := a.cfg.DatabaseOptions()
	if err != nil {
		return nil, err
	}
	registry, err := a.registry()
	if err != nil {
		return nil, err
	}

	factory := dbcontext.NewFactory(opts, a.cfg.Migrations.Assembly, a.cfg.Migrations.SchemaPrefix,
		dbcontext.WithRegistry(registry),
		dbcontext.WithFs(config.AppFs),
	)
	return factory.CreateContext(ctx)
}
