package config

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/spf13/viper"

	sharedConfig "hungrylist/internal/shared/config"
)

type Config struct {
	Server    sharedConfig.ServerConfig    `mapstructure:"server"`
	Database  sharedConfig.DatabaseConfig  `mapstructure:"database"`
	Logger    sharedConfig.LoggerConfig    `mapstructure:"logger"`
	Auth      sharedConfig.AuthConfig      `mapstructure:"auth"`
	Backup    sharedConfig.BackupConfig    `mapstructure:"backup"`
	Redis     sharedConfig.RedisConfig     `mapstructure:"redis"`
	RateLimit sharedConfig.RateLimitConfig `mapstructure:"rate_limit"`
}

var pinPattern = regexp.MustCompile(`^\d{4}$`)

// Load reads configs/config.yaml (optional) and HUNGRYLIST_* environment
// variables into a Config. A non-empty configPath names the file instead and
// must exist. The returned value is the single source of process
// configuration; callers pass pieces of it into constructors.
func Load(env, configPath string) (*Config, error) {
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath("../configs")
		v.AddConfigPath("../../configs")
	}

	v.SetEnvPrefix("HUNGRYLIST")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if env != "" && env != "default" {
		v.Set("server.mode", env)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// A comma separated env value arrives as a single element.
	cfg.Server.AllowedOrigins = splitOrigins(cfg.Server.AllowedOrigins)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the settings the server cannot start without.
func Validate(cfg *Config) error {
	var problems []string

	if cfg.Auth.PINHash == "" && !pinPattern.MatchString(cfg.Auth.PIN) {
		problems = append(problems, "auth.pin: must be exactly 4 digits")
	}
	if len(cfg.Auth.SessionSecret) < 16 {
		problems = append(problems, "auth.session_secret: must be at least 16 characters")
	}
	if cfg.Auth.Lockout.MaxFailures < 1 {
		problems = append(problems, "auth.lockout.max_failures: must be positive")
	}
	if cfg.Backup.Dir == "" {
		problems = append(problems, "backup.dir: must not be empty")
	}
	switch cfg.Database.Driver {
	case "sqlite", "mysql":
	default:
		problems = append(problems, fmt.Sprintf("database.driver: unsupported driver %q", cfg.Database.Driver))
	}

	if len(problems) > 0 {
		return fmt.Errorf("config validation failed:\n%s", strings.Join(problems, "\n"))
	}
	return nil
}

func splitOrigins(raw []string) []string {
	var origins []string
	for _, entry := range raw {
		for _, origin := range strings.Split(entry, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				origins = append(origins, origin)
			}
		}
	}
	return origins
}

func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.trust_proxy", false)
	v.SetDefault("server.allowed_origins", []string{"http://localhost:5173"})
	v.SetDefault("server.frontend_dist_dir", "../frontend/dist")
	v.SetDefault("server.business_timezone", "UTC")

	// Database defaults
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.data_dir", "/data")
	v.SetDefault("database.sqlite_filename", "hungrylist.sqlite")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.username", "root")
	v.SetDefault("database.password", "")
	v.SetDefault("database.database", "hungrylist")
	v.SetDefault("database.max_idle_conns", 2)
	v.SetDefault("database.max_open_conns", 1)
	v.SetDefault("database.conn_max_lifetime", 60)
	v.SetDefault("database.busy_timeout_ms", 5000)
	v.SetDefault("database.migration_strategy", "goose")

	// Logger defaults
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.output_path", "stdout")

	// Auth defaults; empty keys are registered so env overrides reach Unmarshal
	v.SetDefault("auth.pin", "")
	v.SetDefault("auth.pin_hash", "")
	v.SetDefault("auth.session_secret", "")
	v.SetDefault("auth.bcrypt_cost", 10)
	v.SetDefault("auth.session.default_exp_days", 1)
	v.SetDefault("auth.session.trusted_exp_days", 365)
	v.SetDefault("auth.lockout.max_failures", 3)
	v.SetDefault("auth.lockout.block_hours", 6)
	v.SetDefault("auth.cookie.name", "hungrylist_session")
	v.SetDefault("auth.cookie.domain", "")
	v.SetDefault("auth.cookie.path", "/")
	v.SetDefault("auth.cookie.secure", false)
	v.SetDefault("auth.cookie.same_site", "Lax")

	// Backup defaults
	v.SetDefault("backup.dir", "/data/backups")
	v.SetDefault("backup.schedule_enabled", true)
	v.SetDefault("backup.schedule_cron", "0 3 1 * *")

	// Redis defaults
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("rate_limit.requests_per_minute", 300)
}
