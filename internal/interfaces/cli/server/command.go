package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/soripaulos/medical-quiz-app-sub001/internal/infrastructure/config"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/infrastructure/database"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/infrastructure/migration"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/interfaces/cli/bootstrap"
	httpRouter "github.com/soripaulos/medical-quiz-app-sub001/internal/interfaces/http"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/shared/logger"
)

var (
	env                string
	autoMigrate        bool
	skipMigrationCheck bool
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Start the HTTP server",
		Long:  `Start the quiz API server with the configuration for the given environment.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.Flags().BoolVar(&autoMigrate, "auto-migrate", false, "Automatically run database migrations on startup (not recommended for production)")
	cmd.Flags().BoolVar(&skipMigrationCheck, "skip-migration-check", false, "Skip migration status check on startup")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	if envVar := os.Getenv("ENV"); envVar != "" {
		env = envVar
	}

	cfg, log, err := bootstrap.Init(env)
	if err != nil {
		return err
	}
	defer logger.Sync()
	defer database.Close()

	log.Infow("starting server",
		"environment", env,
		"auto-migrate", autoMigrate)

	gin.SetMode(cfg.Server.Mode)
	gin.DefaultWriter = io.Discard
	gin.DebugPrintRouteFunc = func(httpMethod, absolutePath, handlerName string, nuHandlers int) {}

	if err := handleMigrations(cfg, log); err != nil {
		log.Fatalw("migration handling failed", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	container, err := httpRouter.NewContainer(ctx, database.Get(), cfg, log)
	if err != nil {
		return fmt.Errorf("failed to build container: %w", err)
	}
	defer container.Shutdown()
	container.SetupRoutes()

	srv := &http.Server{
		Addr:         cfg.Server.GetAddr(),
		Handler:      container.GetEngine(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infow("server starting",
			"address", cfg.Server.GetAddr(),
			"mode", cfg.Server.Mode)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("failed to start server", "error", err)
		}
	}()

	<-ctx.Done()

	log.Infow("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorw("server forced to shutdown", "error", err)
		return err
	}

	log.Infow("server exited gracefully")
	return nil
}

func handleMigrations(cfg *config.Config, log logger.Interface) error {
	if skipMigrationCheck {
		log.Infow("skipping migration check")
		return nil
	}

	manager, err := migration.NewManager(cfg.Database.Driver, log)
	if err != nil {
		return err
	}

	if autoMigrate {
		if env == "production" {
			log.Warnw("auto-migration is enabled in production environment - this is not recommended!")
		}
		return manager.Migrate(database.Get())
	}

	goose, ok := manager.Goose()
	if !ok {
		log.Infow("no versioned migrations for driver, run with --auto-migrate to sync the schema",
			"driver", cfg.Database.Driver)
		return nil
	}

	version, err := goose.GetVersion(database.Get())
	if err != nil {
		log.Warnw("failed to check migration status", "error", err)
		return nil
	}
	log.Infow("current migration version", "version", version)
	return nil
}
