package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/soripaulos/medical-quiz-app-sub001/internal/interfaces/cli/housekeeping"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/interfaces/cli/migrate"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/interfaces/cli/seed"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/interfaces/cli/server"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/interfaces/cli/token"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "medquiz",
		Short: "Medical quiz backend",
		Long:  `Quiz session API with migration, seeding and housekeeping commands.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		seed.NewCommand(),
		housekeeping.NewSweepCommand(),
		housekeeping.NewCleanupSessionsCommand(),
		token.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
