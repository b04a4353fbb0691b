package migration

import (
	"embed"
	"fmt"
	"path"

	"github.com/pressly/goose/v3"
	"gorm.io/gorm"

	"github.com/soripaulos/medical-quiz-app-sub001/internal/shared/config"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/shared/logger"
)

//go:embed scripts/*/*.sql
var embeddedScripts embed.FS

// Strategy defines the interface for different migration strategies
type Strategy interface {
	// Migrate brings the schema up to date
	Migrate(db *gorm.DB) error
	// GetName returns the strategy name
	GetName() string
}

// GooseStrategy runs the versioned SQL scripts embedded in the binary.
type GooseStrategy struct {
	dialect string
	logger  logger.Interface
}

// NewGooseStrategy returns a goose runner for mysql or postgres.
func NewGooseStrategy(driver string, log logger.Interface) (*GooseStrategy, error) {
	switch driver {
	case config.DriverMySQL, config.DriverPostgres:
	default:
		return nil, fmt.Errorf("goose migrations are not provided for driver %q", driver)
	}
	return &GooseStrategy{
		dialect: driver,
		logger:  log.With("component", "migration.goose"),
	}, nil
}

// ScriptsDir is the directory holding the dialect's scripts, relative to the embedded FS.
func (s *GooseStrategy) ScriptsDir() string {
	return path.Join("scripts", s.dialect)
}

func (s *GooseStrategy) prepare() error {
	goose.SetBaseFS(embeddedScripts)
	goose.SetLogger(&gooseLogger{log: s.logger})
	if err := goose.SetDialect(s.dialect); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	return nil
}

func (s *GooseStrategy) Migrate(db *gorm.DB) error {
	s.logger.Infow("starting goose migration", "dialect", s.dialect)

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	if err := s.prepare(); err != nil {
		return err
	}

	currentVersion, err := goose.GetDBVersion(sqlDB)
	if err != nil {
		s.logger.Errorw("failed to get current version", "error", err)
		return fmt.Errorf("failed to get current version: %w", err)
	}

	if err := goose.Up(sqlDB, s.ScriptsDir()); err != nil {
		s.logger.Errorw("migration failed", "error", err)
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	finalVersion, err := goose.GetDBVersion(sqlDB)
	if err != nil {
		return fmt.Errorf("failed to get final version: %w", err)
	}

	s.logger.Infow("migration completed successfully",
		"from_version", currentVersion,
		"to_version", finalVersion)

	return nil
}

func (s *GooseStrategy) GetName() string {
	return "goose"
}

// MigrateDown rolls back the given number of versions.
func (s *GooseStrategy) MigrateDown(db *gorm.DB, steps int) error {
	s.logger.Infow("starting down migration", "steps", steps)

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	if err := s.prepare(); err != nil {
		return err
	}

	for i := 0; i < steps; i++ {
		if err := goose.Down(sqlDB, s.ScriptsDir()); err != nil {
			s.logger.Errorw("down migration failed", "error", err, "step", i+1)
			return fmt.Errorf("failed to run down migration: %w", err)
		}
	}

	s.logger.Infow("down migration completed successfully")
	return nil
}

func (s *GooseStrategy) GetVersion(db *gorm.DB) (int64, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return 0, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	if err := s.prepare(); err != nil {
		return 0, err
	}

	version, err := goose.GetDBVersion(sqlDB)
	if err != nil {
		return 0, fmt.Errorf("failed to get version: %w", err)
	}
	return version, nil
}

// Status prints the applied/pending state of every script through the logger.
func (s *GooseStrategy) Status(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	if err := s.prepare(); err != nil {
		return err
	}

	if err := goose.Status(sqlDB, s.ScriptsDir()); err != nil {
		return fmt.Errorf("failed to get status: %w", err)
	}
	return nil
}

// Create writes a new SQL script into dir on disk. New scripts are picked up
// by the embedded FS on the next build.
func (s *GooseStrategy) Create(dir, name string) error {
	if err := goose.SetDialect(s.dialect); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	goose.SetBaseFS(nil)
	defer goose.SetBaseFS(embeddedScripts)

	if err := goose.Create(nil, path.Join(dir, s.dialect), name, "sql"); err != nil {
		return fmt.Errorf("failed to create migration: %w", err)
	}

	s.logger.Infow("migration created successfully", "name", name, "dialect", s.dialect)
	return nil
}

// gooseLogger adapts goose's printf logger to the structured logger.
type gooseLogger struct {
	log logger.Interface
}

func (l *gooseLogger) Printf(format string, v ...interface{}) {
	l.log.Infow(fmt.Sprintf(format, v...))
}

func (l *gooseLogger) Fatalf(format string, v ...interface{}) {
	l.log.Fatalw(fmt.Sprintf(format, v...))
}
