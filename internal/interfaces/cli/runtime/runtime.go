// Package runtime assembles the process dependencies shared by the CLI
// commands: configuration, logger, database, artifact store and services.
package runtime

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"hungrylist/internal/infrastructure/config"
	"hungrylist/internal/infrastructure/database"
	"hungrylist/internal/infrastructure/migration"
	"hungrylist/internal/infrastructure/storage"
	httpapp "hungrylist/internal/interfaces/http"
	"hungrylist/internal/shared/biztime"
	"hungrylist/internal/shared/logger"
)

// Options are the flags every command accepts.
type Options struct {
	Env        string
	ConfigPath string
}

// Runtime is an opened process environment. Close releases it.
type Runtime struct {
	Config    *config.Config
	DB        *gorm.DB
	Logger    logger.Interface
	Container *httpapp.Container
}

// LoadConfig loads configuration and initialises the logger and the business
// timezone. Commands that never touch the database stop here.
func LoadConfig(opts Options) (*config.Config, logger.Interface, error) {
	cfg, err := config.Load(opts.Env, opts.ConfigPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger, cfg.Server.Mode); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := biztime.Init(cfg.Server.BusinessTZ); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize business timezone: %w", err)
	}

	return cfg, logger.NewLogger(), nil
}

// OpenDatabase connects and brings the schema up to date.
func OpenDatabase(cfg *config.Config, log logger.Interface) (*gorm.DB, error) {
	if err := database.Init(&cfg.Database); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	manager, err := migration.NewManager(cfg.Database.MigrationStrategy, cfg.Database.Driver)
	if err != nil {
		return nil, errors.Join(err, database.Close())
	}
	if err := manager.Migrate(database.Get()); err != nil {
		return nil, errors.Join(err, database.Close())
	}

	log.Infow("database ready", "driver", cfg.Database.Driver, "strategy", manager.GetStrategy().GetName())
	return database.Get(), nil
}

// Open loads everything a command needs to run services. withRedis connects
// to redis when it is enabled in the configuration.
func Open(ctx context.Context, opts Options, withRedis bool) (*Runtime, error) {
	cfg, log, err := LoadConfig(opts)
	if err != nil {
		return nil, err
	}

	gdb, err := OpenDatabase(cfg, log)
	if err != nil {
		return nil, err
	}

	store, err := storage.NewDiskArtifactStore(cfg.Backup.Dir)
	if err != nil {
		return nil, errors.Join(err, database.Close())
	}

	containerOpts := httpapp.ContainerOptions{DB: gdb, Store: store}
	if withRedis {
		client, err := httpapp.NewRedisClient(ctx, cfg)
		if err != nil {
			return nil, errors.Join(err, database.Close())
		}
		containerOpts.Redis = client
	}

	container, err := httpapp.NewContainer(cfg, containerOpts, log)
	if err != nil {
		return nil, errors.Join(err, database.Close())
	}

	return &Runtime{Config: cfg, DB: gdb, Logger: log, Container: container}, nil
}

func (r *Runtime) Close() error {
	return errors.Join(r.Container.Close(), database.Close())
}
