// Package main is the entry point for the dbprovider CLI.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/satishbabariya/dbprovider/cmd/dbprovider/commands"
	"github.com/satishbabariya/dbprovider/internal/ui"
)

var (
	// Version information (set by build)
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rootCmd := commands.NewRootCommand(Version, Commit)
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		ui.PrintError("%v", err)
		os.Exit(1)
	}
}
