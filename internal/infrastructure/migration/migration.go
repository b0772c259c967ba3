package migration

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"hungrylist/internal/shared/logger"
)

// Manager handles database migrations with different strategies
type Manager struct {
	strategy Strategy
	logger   logger.Interface
}

// NewManager picks a strategy by name: goose (default), golang_migrate or auto.
func NewManager(strategyName, driver string) (*Manager, error) {
	var strategy Strategy

	switch strings.ToLower(strategyName) {
	case "", "goose":
		strategy = NewGooseStrategy(driver)
	case "golang_migrate", "golang-migrate", "migrate":
		strategy = NewGolangMigrateStrategy(driver)
	case "auto", "gorm_auto_migrate":
		strategy = NewGormAutoMigrateStrategy()
	default:
		return nil, fmt.Errorf("unknown migration strategy %q", strategyName)
	}

	return NewManagerWithStrategy(strategy), nil
}

// NewManagerWithStrategy creates a new migration manager with a specific strategy
func NewManagerWithStrategy(strategy Strategy) *Manager {
	return &Manager{
		strategy: strategy,
		logger:   logger.NewLogger().Named("migration.manager"),
	}
}

// Migrate executes the configured migration strategy
func (m *Manager) Migrate(db *gorm.DB) error {
	m.logger.Infow("starting database migration", "strategy", m.strategy.GetName())

	if err := m.strategy.Migrate(db); err != nil {
		return fmt.Errorf("migration failed with strategy %s: %w", m.strategy.GetName(), err)
	}
	return nil
}

// Version reports the schema version recorded by the strategy.
func (m *Manager) Version(db *gorm.DB) (int64, error) {
	return m.strategy.Version(db)
}

// GetStrategy returns the current migration strategy
func (m *Manager) GetStrategy() Strategy {
	return m.strategy
}
