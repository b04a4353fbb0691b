package migrate

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/soripaulos/medical-quiz-app-sub001/internal/infrastructure/config"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/infrastructure/database"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/infrastructure/migration"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/interfaces/cli/bootstrap"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/shared/logger"
)

var (
	env   string
	name  string
	dir   string
	steps int
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration tools",
		Long:  `Manage database migrations including running migrations, checking status, and creating new migration files.`,
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")

	cmd.AddCommand(
		newUpCommand(),
		newDownCommand(),
		newStatusCommand(),
		newCreateCommand(),
	)

	return cmd
}

func newUpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Run all pending migrations",
		Long:  `Apply all pending database migrations to bring the database schema up to date.`,
		RunE:  runUp,
	}
}

func newDownCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "down",
		Short: "Rollback migrations",
		Long:  `Rollback a specified number of database migrations.`,
		RunE:  runDown,
	}

	cmd.Flags().IntVarP(&steps, "steps", "n", 1, "Number of migrations to rollback")

	return cmd
}

func newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		Long:  `Display the current migration version and status of the database.`,
		RunE:  runStatus,
	}
}

func newCreateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new migration",
		Long:  `Create new migration files with the specified name.`,
		RunE:  runCreate,
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "Name of the migration (required)")
	cmd.Flags().StringVar(&dir, "dir", "./internal/infrastructure/migration/scripts", "Scripts root directory")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func initEnv() (*config.Config, *migration.Manager, logger.Interface, error) {
	cfg, log, err := bootstrap.Init(env)
	if err != nil {
		return nil, nil, nil, err
	}

	manager, err := migration.NewManager(cfg.Database.Driver, log)
	if err != nil {
		_ = database.Close()
		return nil, nil, nil, err
	}

	return cfg, manager, log, nil
}

func gooseFor(cfg *config.Config, manager *migration.Manager) (*migration.GooseStrategy, error) {
	g, ok := manager.Goose()
	if !ok {
		return nil, fmt.Errorf("versioned migrations are not available for driver %q", cfg.Database.Driver)
	}
	return g, nil
}

func runUp(cmd *cobra.Command, args []string) error {
	_, manager, log, err := initEnv()
	if err != nil {
		return err
	}
	defer logger.Sync()
	defer database.Close()

	log.Infow("running up migrations", "environment", env)

	if err := manager.Migrate(database.Get()); err != nil {
		return err
	}

	log.Infow("migrations completed successfully")
	return nil
}

func runDown(cmd *cobra.Command, args []string) error {
	cfg, manager, log, err := initEnv()
	if err != nil {
		return err
	}
	defer logger.Sync()
	defer database.Close()

	g, err := gooseFor(cfg, manager)
	if err != nil {
		return err
	}

	log.Infow("running down migrations", "environment", env, "steps", steps)

	if err := g.MigrateDown(database.Get(), steps); err != nil {
		log.Errorw("down migration failed", "error", err)
		return fmt.Errorf("down migration failed: %w", err)
	}

	log.Infow("down migration completed successfully")
	return nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, manager, log, err := initEnv()
	if err != nil {
		return err
	}
	defer logger.Sync()
	defer database.Close()

	g, err := gooseFor(cfg, manager)
	if err != nil {
		return err
	}

	version, err := g.GetVersion(database.Get())
	if err != nil {
		log.Errorw("failed to get migration version", "error", err)
		return fmt.Errorf("failed to get migration version: %w", err)
	}

	fmt.Printf("\nMigration Status:\n")
	fmt.Printf("  Environment:     %s\n", env)
	fmt.Printf("  Driver:          %s\n", cfg.Database.Driver)
	fmt.Printf("  Current Version: %d\n", version)

	if err := g.Status(database.Get()); err != nil {
		log.Errorw("failed to get detailed status", "error", err)
		return fmt.Errorf("failed to get detailed status: %w", err)
	}
	return nil
}

func runCreate(cmd *cobra.Command, args []string) error {
	cfg, manager, log, err := initEnv()
	if err != nil {
		return err
	}
	defer logger.Sync()
	defer database.Close()

	g, err := gooseFor(cfg, manager)
	if err != nil {
		return err
	}

	log.Infow("creating migration", "name", name, "dir", dir)
	return g.Create(dir, name)
}
