package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/satishbabariya/dbprovider/internal/ui"
	"github.com/satishbabariya/dbprovider/provider"
)

func newProvidersCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "providers",
		Short: "Describe how each database provider is configured",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := providersMarkdown()
			if err != nil {
				return err
			}
			return ui.PrintMarkdown(doc)
		},
	}
}

func providersMarkdown() (string, error) {
	var sb strings.Builder
	sb.WriteString("# Providers\n\n")
	sb.WriteString("| Provider | Retry attempts | History table | CREATE DATABASE |\n")
	sb.WriteString("|---|---|---|---|\n")

	for _, kind := range []provider.Kind{provider.SQLite, provider.Postgres, provider.MySQL} {
		s, err := provider.Resolve(kind, provider.ConnectionConfig{SchemaPrefix: "<schema prefix>"})
		if err != nil {
			return "", err
		}
		create := "default"
		if s.ReplaceSQLGenerator {
			create = "template0, C collation, UTF8"
		}
		fmt.Fprintf(&sb, "| %s | %d | %s | %s |\n", kind, s.RetryAttempts, s.MigrationsHistoryTable, create)
	}

	sb.WriteString("\nThe history table is only overridden when a schema prefix is configured.\n")
	return sb.String(), nil
}
