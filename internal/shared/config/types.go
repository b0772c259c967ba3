package config

import (
	"fmt"
	"path/filepath"
	"time"
)

type ServerConfig struct {
	Host            string   `mapstructure:"host"`
	Port            int      `mapstructure:"port"`
	Mode            string   `mapstructure:"mode"`
	TrustProxy      bool     `mapstructure:"trust_proxy"`
	AllowedOrigins  []string `mapstructure:"allowed_origins"`
	FrontendDistDir string   `mapstructure:"frontend_dist_dir"`
	BusinessTZ      string   `mapstructure:"business_timezone"`
}

func (s *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type DatabaseConfig struct {
	Driver            string `mapstructure:"driver"`
	DataDir           string `mapstructure:"data_dir"`
	SQLiteFilename    string `mapstructure:"sqlite_filename"`
	Host              string `mapstructure:"host"`
	Port              int    `mapstructure:"port"`
	Username          string `mapstructure:"username"`
	Password          string `mapstructure:"password"`
	Database          string `mapstructure:"database"`
	MaxIdleConns      int    `mapstructure:"max_idle_conns"`
	MaxOpenConns      int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime   int    `mapstructure:"conn_max_lifetime"`
	BusyTimeoutMillis int    `mapstructure:"busy_timeout_ms"`
	MigrationStrategy string `mapstructure:"migration_strategy"`
}

// SQLitePath returns the on-disk location of the sqlite database file.
func (d *DatabaseConfig) SQLitePath() string {
	return filepath.Join(d.DataDir, d.SQLiteFilename)
}

func (d *DatabaseConfig) GetDSN() string {
	switch d.Driver {
	case "mysql":
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=UTC&multiStatements=true",
			d.Username, d.Password, d.Host, d.Port, d.Database)
	default:
		return fmt.Sprintf("file:%s?_journal_mode=WAL&_synchronous=NORMAL&_foreign_keys=on&_busy_timeout=%d&_txlock=immediate",
			d.SQLitePath(), d.BusyTimeoutMillis)
	}
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

type CookieConfig struct {
	Name     string `mapstructure:"name"`
	Domain   string `mapstructure:"domain"`
	Path     string `mapstructure:"path"`
	Secure   bool   `mapstructure:"secure"`
	SameSite string `mapstructure:"same_site"`
}

type LockoutConfig struct {
	MaxFailures int `mapstructure:"max_failures"`
	BlockHours  int `mapstructure:"block_hours"`
}

func (l LockoutConfig) BlockDuration() time.Duration {
	return time.Duration(l.BlockHours) * time.Hour
}

type SessionConfig struct {
	DefaultExpDays int `mapstructure:"default_exp_days"`
	TrustedExpDays int `mapstructure:"trusted_exp_days"`
}

func (s SessionConfig) TTL(trusted bool) time.Duration {
	if trusted {
		return time.Duration(s.TrustedExpDays) * 24 * time.Hour
	}
	return time.Duration(s.DefaultExpDays) * 24 * time.Hour
}

type AuthConfig struct {
	PIN           string        `mapstructure:"pin"`
	PINHash       string        `mapstructure:"pin_hash"`
	BcryptCost    int           `mapstructure:"bcrypt_cost"`
	SessionSecret string        `mapstructure:"session_secret"`
	Session       SessionConfig `mapstructure:"session"`
	Lockout       LockoutConfig `mapstructure:"lockout"`
	Cookie        CookieConfig  `mapstructure:"cookie"`
}

type BackupConfig struct {
	Dir             string `mapstructure:"dir"`
	ScheduleEnabled bool   `mapstructure:"schedule_enabled"`
	ScheduleCron    string `mapstructure:"schedule_cron"`
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

func (r *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type RateLimitConfig struct {
	RequestsPerMinute int `mapstructure:"requests_per_minute"`
}
