package migration

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/soripaulos/medical-quiz-app-sub001/internal/shared/config"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/shared/logger"
)

// Manager handles database migrations with the strategy matching the driver.
type Manager struct {
	strategy Strategy
	logger   logger.Interface
}

// NewManager picks goose for mysql/postgres and AutoMigrate for sqlite.
func NewManager(driver string, log logger.Interface) (*Manager, error) {
	var strategy Strategy
	switch driver {
	case config.DriverSQLite:
		strategy = NewGormAutoMigrateStrategy(log)
	default:
		goose, err := NewGooseStrategy(driver, log)
		if err != nil {
			return nil, err
		}
		strategy = goose
	}
	return NewManagerWithStrategy(strategy, log), nil
}

// NewManagerWithStrategy creates a new migration manager with a specific strategy
func NewManagerWithStrategy(strategy Strategy, log logger.Interface) *Manager {
	return &Manager{
		strategy: strategy,
		logger:   log.With("component", "migration.manager"),
	}
}

// Migrate executes the configured migration strategy
func (m *Manager) Migrate(db *gorm.DB) error {
	m.logger.Infow("starting database migration", "strategy", m.strategy.GetName())

	if err := m.strategy.Migrate(db); err != nil {
		m.logger.Errorw("migration failed", "strategy", m.strategy.GetName(), "error", err)
		return fmt.Errorf("migration failed with strategy %s: %w", m.strategy.GetName(), err)
	}

	m.logger.Infow("database migration completed successfully", "strategy", m.strategy.GetName())
	return nil
}

// GetStrategy returns the current migration strategy
func (m *Manager) GetStrategy() Strategy {
	return m.strategy
}

// Goose returns the goose strategy when the manager uses one.
func (m *Manager) Goose() (*GooseStrategy, bool) {
	g, ok := m.strategy.(*GooseStrategy)
	return g, ok
}
