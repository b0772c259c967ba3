package http

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	appauth "hungrylist/internal/application/auth"
	appbackup "hungrylist/internal/application/backup"
	apphistory "hungrylist/internal/application/history"
	applist "hungrylist/internal/application/list"
	"hungrylist/internal/domain/auth"
	infraauth "hungrylist/internal/infrastructure/auth"
	"hungrylist/internal/infrastructure/config"
	"hungrylist/internal/infrastructure/ratelimit"
	"hungrylist/internal/infrastructure/repository"
	"hungrylist/internal/shared/biztime"
	"hungrylist/internal/shared/db"
	"hungrylist/internal/shared/logger"
	"hungrylist/internal/shared/services/markdown"
)

// Container holds the wired services of one process. The HTTP server and
// the operator CLI build the same container.
type Container struct {
	Auth     *appauth.Service
	Sessions *appauth.SessionStore
	Ledger   *apphistory.Ledger
	Sections *applist.SectionService
	Items    *applist.ItemService
	Archiver *appbackup.Archiver
	Restorer *appbackup.RestoreEngine

	RateLimiter ratelimit.RateLimiter
	redis       *redis.Client
}

// ContainerOptions carries the infrastructure the container cannot build
// from configuration alone.
type ContainerOptions struct {
	DB    *gorm.DB
	Store appbackup.ArtifactStore
	Clock biztime.Clock
	// Redis is optional; without it the API is not rate limited.
	Redis *redis.Client
}

func NewContainer(cfg *config.Config, opts ContainerOptions, log logger.Interface) (*Container, error) {
	clock := opts.Clock
	if clock == nil {
		clock = biztime.SystemClock{}
	}
	tx := db.NewTransactionManager(opts.DB)

	pinVerifier, err := infraauth.NewBcryptPINVerifier(cfg.Auth.PIN, cfg.Auth.PINHash, cfg.Auth.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to build pin verifier: %w", err)
	}
	tokens, err := infraauth.NewSessionTokenService(cfg.Auth.SessionSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to build session token service: %w", err)
	}

	failureRepo := repository.NewAuthFailureRepository(opts.DB)
	sessionRepo := repository.NewSessionRepository(opts.DB)
	historyRepo := repository.NewHistoryRepository(opts.DB)
	sectionRepo := repository.NewSectionRepository(opts.DB)
	itemRepo := repository.NewItemRepository(opts.DB)
	backupRepo := repository.NewBackupRepository(opts.DB)
	datasetRepo := repository.NewDatasetRepository(opts.DB)

	policy := auth.LockoutPolicy{
		MaxFailures:   cfg.Auth.Lockout.MaxFailures,
		BlockDuration: cfg.Auth.Lockout.BlockDuration(),
	}

	ledger := apphistory.NewLedger(historyRepo, clock, nil, log.Named("history"))
	guard := appauth.NewLockoutGuard(failureRepo, tx, clock, policy, log.Named("auth.lockout"))
	sessions := appauth.NewSessionStore(sessionRepo, tokens, clock, cfg.Auth.Session, nil, log.Named("auth.sessions"))
	archiver := appbackup.NewArchiver(backupRepo, datasetRepo, opts.Store, ledger, tx, clock, log.Named("backup"))

	c := &Container{
		Auth:     appauth.NewService(guard, sessions, pinVerifier, log.Named("auth")),
		Sessions: sessions,
		Ledger:   ledger,
		Sections: applist.NewSectionService(sectionRepo, itemRepo, ledger, tx, clock, nil, log.Named("sections")),
		Items:    applist.NewItemService(itemRepo, sectionRepo, ledger, tx, clock, markdown.NewRenderer(), nil, log.Named("items")),
		Archiver: archiver,
		Restorer: appbackup.NewRestoreEngine(backupRepo, datasetRepo, opts.Store, archiver, sessions, ledger, tx, log.Named("restore")),
		redis:    opts.Redis,
	}
	if opts.Redis != nil {
		c.RateLimiter = ratelimit.NewRedisRateLimiter(opts.Redis)
	}
	return c, nil
}

// Bootstrap seeds the default sections into an empty database.
func (c *Container) Bootstrap(ctx context.Context) error {
	if _, err := c.Sections.Bootstrap(ctx); err != nil {
		return fmt.Errorf("failed to bootstrap sections: %w", err)
	}
	return nil
}

// Close releases connections the container opened on its own behalf.
func (c *Container) Close() error {
	if c.redis != nil {
		return c.redis.Close()
	}
	return nil
}

// NewRedisClient connects to redis when it is enabled in cfg. It returns
// nil, nil when disabled.
func NewRedisClient(ctx context.Context, cfg *config.Config) (*redis.Client, error) {
	if !cfg.Redis.Enabled {
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.GetAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return client, nil
}
