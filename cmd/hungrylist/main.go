package main

import (
	"os"

	"github.com/spf13/cobra"

	"hungrylist/internal/interfaces/cli/backup"
	"hungrylist/internal/interfaces/cli/migrate"
	"hungrylist/internal/interfaces/cli/pin"
	"hungrylist/internal/interfaces/cli/server"
	"hungrylist/internal/interfaces/cli/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "hungrylist",
		Short:        "HungryList - a shared household shopping list",
		Long:         `HungryList serves the household shopping list API and frontend, and carries migration and backup tools for operators.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		backup.NewCommand(),
		pin.NewCommand(),
		version.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
