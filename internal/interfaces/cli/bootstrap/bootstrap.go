// Package bootstrap loads configuration and opens shared resources for CLI commands.
package bootstrap

import (
	"fmt"

	"github.com/soripaulos/medical-quiz-app-sub001/internal/infrastructure/config"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/infrastructure/database"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/shared/biztime"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/shared/logger"
)

// Init loads config for env, then sets up logging, the business timezone and
// the database connection. Callers own database.Close.
func Init(env string) (*config.Config, logger.Interface, error) {
	cfg, err := config.Load(env)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	cfg.Server.Mode = GinMode(env)

	if err := logger.Init(&cfg.Logger, cfg.Server.Mode); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := biztime.Init(cfg.Server.Timezone); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize business timezone: %w", err)
	}

	if err := database.Init(&cfg.Database); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return cfg, logger.NewLogger(), nil
}

// GinMode maps an environment name to a gin mode.
func GinMode(environment string) string {
	switch environment {
	case "production", "prod", "release":
		return "release"
	case "test", "testing":
		return "test"
	default:
		return "debug"
	}
}
