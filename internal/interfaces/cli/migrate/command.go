package migrate

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"hungrylist/internal/infrastructure/database"
	"hungrylist/internal/infrastructure/migration"
	"hungrylist/internal/interfaces/cli/runtime"
	"hungrylist/internal/shared/logger"
)

var (
	opts runtime.Options
	name string
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration tools",
		Long:  `Run pending migrations, check the schema version, and scaffold new migration files.`,
	}

	cmd.PersistentFlags().StringVarP(&opts.Env, "env", "e", "", "Gin mode override (debug, release, test)")
	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")

	cmd.AddCommand(
		newUpCommand(),
		newStatusCommand(),
		newCreateCommand(),
	)

	return cmd
}

func newUpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Run all pending migrations",
		RunE:  runUp,
	}
}

func newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the current schema version",
		RunE:  runStatus,
	}
}

func newCreateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new migration",
		Long:  `Create goose and golang-migrate files for every supported dialect.`,
		RunE:  runCreate,
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "Name of the migration (required)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func initManager() (*migration.Manager, logger.Interface, error) {
	cfg, log, err := runtime.LoadConfig(opts)
	if err != nil {
		return nil, nil, err
	}

	if err := database.Init(&cfg.Database); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	manager, err := migration.NewManager(cfg.Database.MigrationStrategy, cfg.Database.Driver)
	if err != nil {
		_ = database.Close()
		return nil, nil, err
	}
	return manager, log, nil
}

func runUp(cmd *cobra.Command, _ []string) error {
	manager, log, err := initManager()
	if err != nil {
		return err
	}
	defer database.Close()

	log.Infow("running migrations", "strategy", manager.GetStrategy().GetName())
	if err := manager.Migrate(database.Get()); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	version, err := manager.Version(database.Get())
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "migrations applied, schema version %d\n", version)
	return nil
}

func runStatus(cmd *cobra.Command, _ []string) error {
	manager, _, err := initManager()
	if err != nil {
		return err
	}
	defer database.Close()

	version, err := manager.Version(database.Get())
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "strategy: %s\nversion:  %d\n", manager.GetStrategy().GetName(), version)
	return nil
}

func runCreate(cmd *cobra.Command, _ []string) error {
	if _, _, err := runtime.LoadConfig(opts); err != nil {
		return err
	}

	scriptsPath, err := filepath.Abs("./internal/infrastructure/migration/scripts")
	if err != nil {
		return fmt.Errorf("failed to resolve scripts path: %w", err)
	}

	files, err := migration.NewGenerator(scriptsPath).CreateMigration(name)
	if err != nil {
		return fmt.Errorf("failed to create migration: %w", err)
	}

	for _, f := range files {
		fmt.Fprintln(cmd.OutOrStdout(), f)
	}
	return nil
}
