package commands

import (
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"github.com/satishbabariya/dbprovider/internal/ui"
)

func newDBCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Manage the configured database",
	}

	cmd.AddCommand(newDBCreateSQLCommand(a))
	cmd.AddCommand(newDBCreateCommand(a))
	cmd.AddCommand(newDBDropCommand(a))
	return cmd
}

func newDBCreateSQLCommand(a *app) *cobra.Command {
	var tablespace string

	cmd := &cobra.Command{
		Use:   "create-sql",
		Short: "Print the statement that creates the configured database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dbc, err := a.openContext(cmd.Context())
			if err != nil {
				return err
			}
			defer dbc.Close(cmd.Context())

			cmds, err := dbc.CreateDatabaseCommands(tablespace)
			if err != nil {
				return err
			}
			for _, c := range cmds {
				fmt.Fprint(cmd.OutOrStdout(), c.SQL)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&tablespace, "tablespace", "", "tablespace for the new database")
	return cmd
}

func newDBCreateCommand(a *app) *cobra.Command {
	var tablespace string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create the configured database if it does not exist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dbc, err := a.openContext(cmd.Context())
			if err != nil {
				return err
			}
			defer dbc.Close(cmd.Context())

			created, err := dbc.EnsureCreated(cmd.Context(), tablespace)
			if err != nil {
				return err
			}
			if created {
				ui.PrintSuccess("Database created")
			} else {
				ui.PrintInfo("Database already exists")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&tablespace, "tablespace", "", "tablespace for the new database")
	return cmd
}

func newDBDropCommand(a *app) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "drop",
		Short: "Drop the configured database",
		Long: `Drop the configured database. All data is lost.

You are asked to confirm unless --force is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				confirmed := false
				prompt := &survey.Confirm{
					Message: "Drop the database? All data will be lost.",
					Default: false,
				}
				if err := survey.AskOne(prompt, &confirmed); err != nil {
					return err
				}
				if !confirmed {
					ui.PrintWarning("Drop cancelled")
					return nil
				}
			}

			dbc, err := a.openContext(cmd.Context())
			if err != nil {
				return err
			}
			defer dbc.Close(cmd.Context())

			dropped, err := dbc.EnsureDeleted(cmd.Context())
			if err != nil {
				return err
			}
			if dropped {
				ui.PrintSuccess("Database dropped")
			} else {
				ui.PrintInfo("Database does not exist")
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip the confirmation prompt")
	return cmd
}
