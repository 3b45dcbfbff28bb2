package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/satishbabariya/dbprovider/internal/ui"
)

func newMigrateCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply and inspect migrations",
	}

	cmd.AddCommand(newMigrateStatusCommand(a))
	cmd.AddCommand(newMigrateUpCommand(a))
	cmd.AddCommand(newMigrateDownCommand(a))
	return cmd
}

func newMigrateStatusCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "List migrations and whether they are applied",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dbc, err := a.openContext(cmd.Context())
			if err != nil {
				return err
			}
			defer dbc.Close(cmd.Context())

			statuses, err := dbc.Status(cmd.Context())
			if err != nil {
				return err
			}
			if len(statuses) == 0 {
				ui.PrintInfo("No migrations found")
				return nil
			}

			ui.PrintSection("Migrations in " + a.cfg.Migrations.Assembly)
			rows := make([][]string, 0, len(statuses))
			for _, s := range statuses {
				state := "pending"
				if s.Applied {
					state = "applied"
				}
				rows = append(rows, []string{s.ID, state, s.AppliedAt})
			}
			return ui.PrintTable([]string{"Migration", "State", "Applied at"}, rows)
		},
	}
}

func newMigrateUpCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dbc, err := a.openContext(cmd.Context())
			if err != nil {
				return err
			}
			defer dbc.Close(cmd.Context())

			applied, err := dbc.Migrate(cmd.Context())
			if err != nil {
				return err
			}
			if len(applied) == 0 {
				ui.PrintInfo("Database is up to date")
				return nil
			}
			for i, id := range applied {
				ui.PrintStep(i+1, len(applied), id)
			}
			ui.PrintSuccess("Applied %d migration(s)", len(applied))
			return nil
		},
	}
}

func newMigrateDownCommand(a *app) *cobra.Command {
	var steps int

	cmd := &cobra.Command{
		Use:   "down",
		Short: "Roll back applied migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if steps < 1 {
				return fmt.Errorf("--steps must be at least 1, got %d", steps)
			}

			dbc, err := a.openContext(cmd.Context())
			if err != nil {
				return err
			}
			defer dbc.Close(cmd.Context())

			reverted, err := dbc.Rollback(cmd.Context(), steps)
			if err != nil {
				return err
			}
			if len(reverted) == 0 {
				ui.PrintInfo("Nothing to roll back")
				return nil
			}
			for i, id := range reverted {
				ui.PrintStep(i+1, len(reverted), id)
			}
			ui.PrintSuccess("Rolled back %d migration(s)", len(reverted))
			return nil
		},
	}

	cmd.Flags().IntVar(&steps, "steps", 1, "number of migrations to roll back")
	return cmd
}
