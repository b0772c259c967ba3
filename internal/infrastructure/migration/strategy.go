package migration

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratemysql "github.com/golang-migrate/migrate/v4/database/mysql"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/pressly/goose/v3"
	"gorm.io/gorm"

	"hungrylist/internal/infrastructure/persistence/models"
	"hungrylist/internal/shared/logger"
)

// Strategy defines the interface for different migration strategies
type Strategy interface {
	// Migrate brings the schema up to date.
	Migrate(db *gorm.DB) error
	// Version reports the applied schema version; 0 means none.
	Version(db *gorm.DB) (int64, error)
	// GetName returns the strategy name
	GetName() string
}

// GooseStrategy applies the embedded goose scripts.
type GooseStrategy struct {
	driver string
	logger logger.Interface
}

func NewGooseStrategy(driver string) Strategy {
	return &GooseStrategy{
		driver: driver,
		logger: logger.NewLogger().Named("migration.goose"),
	}
}

func (s *GooseStrategy) dialect() string {
	if s.driver == "mysql" {
		return "mysql"
	}
	return "sqlite3"
}

func (s *GooseStrategy) prepare(db *gorm.DB) (*sql.DB, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	goose.SetBaseFS(Scripts)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect(s.dialect()); err != nil {
		return nil, fmt.Errorf("failed to set goose dialect: %w", err)
	}
	return sqlDB, nil
}

func (s *GooseStrategy) Migrate(db *gorm.DB) error {
	sqlDB, err := s.prepare(db)
	if err != nil {
		return err
	}
	dir := dialectDir("goose", s.driver)

	currentVersion, err := goose.GetDBVersion(sqlDB)
	if err != nil {
		return fmt.Errorf("failed to get current version: %w", err)
	}

	if err := goose.Up(sqlDB, dir); err != nil {
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

func (s *GooseStrategy) Version(db *gorm.DB) (int64, error) {
	sqlDB, err := s.prepare(db)
	if err != nil {
		return 0, err
	}
	version, err := goose.GetDBVersion(sqlDB)
	if err != nil {
		return 0, fmt.Errorf("failed to get version: %w", err)
	}
	return version, nil
}

func (s *GooseStrategy) GetName() string {
	return "goose"
}

// GolangMigrateStrategy applies the embedded golang-migrate scripts.
type GolangMigrateStrategy struct {
	driver string
	logger logger.Interface
}

func NewGolangMigrateStrategy(driver string) Strategy {
	return &GolangMigrateStrategy{
		driver: driver,
		logger: logger.NewLogger().Named("migration.golang-migrate"),
	}
}

func (s *GolangMigrateStrategy) Migrate(db *gorm.DB) error {
	m, err := s.instance(db)
	if err != nil {
		return err
	}

	currentVersion, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("failed to get current migration version: %w", err)
	}
	if dirty {
		return fmt.Errorf("database is in dirty state at version %d", currentVersion)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		s.logger.Errorw("migration failed", "error", err)
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	finalVersion, _, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("failed to get final migration version: %w", err)
	}

	s.logger.Infow("migration completed successfully",
		"from_version", currentVersion,
		"to_version", finalVersion)
	return nil
}

func (s *GolangMigrateStrategy) Version(db *gorm.DB) (int64, error) {
	m, err := s.instance(db)
	if err != nil {
		return 0, err
	}
	version, _, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get migration version: %w", err)
	}
	return int64(version), nil
}

func (s *GolangMigrateStrategy) GetName() string {
	return "golang_migrate"
}

// instance builds a migrate.Migrate over the shared connection. It is not
// closed: closing would close the gorm pool as well.
func (s *GolangMigrateStrategy) instance(db *gorm.DB) (*migrate.Migrate, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	source, err := iofs.New(Scripts, dialectDir("migrate", s.driver))
	if err != nil {
		return nil, fmt.Errorf("failed to open migration scripts: %w", err)
	}

	if s.driver == "mysql" {
		driver, err := migratemysql.WithInstance(sqlDB, &migratemysql.Config{})
		if err != nil {
			return nil, fmt.Errorf("failed to create MySQL driver: %w", err)
		}
		return migrate.NewWithInstance("iofs", source, "mysql", driver)
	}

	driver, err := migratesqlite.WithInstance(sqlDB, &migratesqlite.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to create sqlite driver: %w", err)
	}
	return migrate.NewWithInstance("iofs", source, "sqlite3", driver)
}

// GormAutoMigrateStrategy derives the schema from the persistence models.
// Partial unique indexes have no struct tag form, so they are added by hand.
type GormAutoMigrateStrategy struct {
	logger logger.Interface
}

func NewGormAutoMigrateStrategy() Strategy {
	return &GormAutoMigrateStrategy{
		logger: logger.NewLogger().Named("migration.auto"),
	}
}

// Models lists every table the application owns.
func Models() []interface{} {
	return []interface{}{
		&models.SectionModel{},
		&models.ItemModel{},
		&models.HistoryEventModel{},
		&models.SessionModel{},
		&models.AuthFailureModel{},
		&models.BackupModel{},
	}
}

var sqliteActiveIndexes = []string{
	"CREATE UNIQUE INDEX IF NOT EXISTS idx_sections_active_name ON sections (normalized_name) WHERE deleted_at IS NULL",
	"CREATE UNIQUE INDEX IF NOT EXISTS idx_items_active_name ON items (section_id, normalized_name) WHERE deleted_at IS NULL",
}

func (s *GormAutoMigrateStrategy) Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to auto migrate: %w", err)
	}
	if db.Dialector.Name() == "sqlite" {
		for _, stmt := range sqliteActiveIndexes {
			if err := db.Exec(stmt).Error; err != nil {
				return fmt.Errorf("failed to create index: %w", err)
			}
		}
	}
	s.logger.Infow("auto migration completed", "tables", len(Models()))
	return nil
}

func (s *GormAutoMigrateStrategy) Version(*gorm.DB) (int64, error) {
	return 0, nil
}

func (s *GormAutoMigrateStrategy) GetName() string {
	return "gorm_auto_migrate"
}
