package server

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"hungrylist/internal/infrastructure/scheduler"
	"hungrylist/internal/interfaces/cli/runtime"
	httpapp "hungrylist/internal/interfaces/http"
	"hungrylist/internal/shared/biztime"
	"hungrylist/internal/shared/version"
)

var opts runtime.Options

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Start the HTTP server",
		Long: `Start the HungryList HTTP server. On startup the schema is migrated, the
default sections are seeded into an empty database and a missed monthly
backup is taken.`,
		RunE: run,
	}

	cmd.Flags().StringVarP(&opts.Env, "env", "e", "", "Gin mode override (debug, release, test)")
	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")

	return cmd
}

func run(cmd *cobra.Command, _ []string) error {
	if envVar := os.Getenv("ENV"); envVar != "" && opts.Env == "" {
		opts.Env = mapEnvToGinMode(envVar)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rt, err := runtime.Open(ctx, opts, true)
	if err != nil {
		return err
	}
	defer rt.Close()

	log := rt.Logger
	cfg := rt.Config
	log.Infow("starting server", "version", version.String(), "mode", cfg.Server.Mode)

	gin.SetMode(mapEnvToGinMode(cfg.Server.Mode))
	gin.DefaultWriter = io.Discard

	if err := rt.Container.Bootstrap(ctx); err != nil {
		return err
	}

	sched, err := scheduler.NewSchedulerManager(log.Named("scheduler"))
	if err != nil {
		return fmt.Errorf("failed to create scheduler: %w", err)
	}
	if cfg.Backup.ScheduleEnabled {
		if err := sched.RegisterBackupJob(rt.Container.Archiver, cfg.Backup.ScheduleCron); err != nil {
			return fmt.Errorf("failed to register backup job: %w", err)
		}
		sched.CatchUpBackup(ctx, rt.Container.Archiver)
	}
	sched.Start()
	defer func() {
		if err := sched.Stop(); err != nil {
			log.Errorw("failed to stop scheduler", "error", err)
		}
	}()

	router := httpapp.NewRouter(rt.Container, cfg, biztime.SystemClock{}, log.Named("http"))
	router.SetupRoutes()

	if err := router.Run(ctx, cfg.Server.GetAddr()); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	log.Infow("server exited gracefully")
	return nil
}

func mapEnvToGinMode(environment string) string {
	switch environment {
	case "production", "prod", "release":
		return gin.ReleaseMode
	case "test", "testing":
		return gin.TestMode
	default:
		return gin.DebugMode
	}
}
