package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_FileAndDefaults(t *testing.T) {
	path := writeConfig(t, `
auth:
  pin: "0420"
  session_secret: "0123456789abcdef-test"
backup:
  dir: /tmp/hungrylist-backups
`)

	cfg, err := Load("", path)
	require.NoError(t, err)

	assert.Equal(t, "0420", cfg.Auth.PIN)
	assert.Equal(t, 3, cfg.Auth.Lockout.MaxFailures)
	assert.Equal(t, 6, cfg.Auth.Lockout.BlockHours)
	assert.Equal(t, 365, cfg.Auth.Session.TrustedExpDays)
	assert.Equal(t, 1, cfg.Auth.Session.DefaultExpDays)
	assert.Equal(t, "hungrylist_session", cfg.Auth.Cookie.Name)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "/tmp/hungrylist-backups", cfg.Backup.Dir)
	assert.Equal(t, "0 3 1 * *", cfg.Backup.ScheduleCron)
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, `
auth:
  pin: "0420"
  session_secret: "0123456789abcdef-test"
`)
	t.Setenv("HUNGRYLIST_AUTH_PIN", "9876")
	t.Setenv("HUNGRYLIST_SERVER_PORT", "9090")
	t.Setenv("HUNGRYLIST_SERVER_ALLOWED_ORIGINS", "http://a.local, http://b.local")

	cfg, err := Load("production", path)
	require.NoError(t, err)

	assert.Equal(t, "9876", cfg.Auth.PIN)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "production", cfg.Server.Mode)
	assert.Equal(t, []string{"http://a.local", "http://b.local"}, cfg.Server.AllowedOrigins)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load("", filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg := &Config{}
		cfg.Auth.PIN = "0420"
		cfg.Auth.SessionSecret = "0123456789abcdef"
		cfg.Auth.Lockout.MaxFailures = 3
		cfg.Backup.Dir = "/data/backups"
		cfg.Database.Driver = "sqlite"
		return cfg
	}

	require.NoError(t, Validate(valid()))

	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"short pin", func(c *Config) { c.Auth.PIN = "42" }, "auth.pin"},
		{"alpha pin", func(c *Config) { c.Auth.PIN = "12a4" }, "auth.pin"},
		{"short secret", func(c *Config) { c.Auth.SessionSecret = "tiny" }, "auth.session_secret"},
		{"no lockout", func(c *Config) { c.Auth.Lockout.MaxFailures = 0 }, "auth.lockout.max_failures"},
		{"no backup dir", func(c *Config) { c.Backup.Dir = "" }, "backup.dir"},
		{"bad driver", func(c *Config) { c.Database.Driver = "postgres" }, "database.driver"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := Validate(cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestValidate_PINHashReplacesPIN(t *testing.T) {
	cfg := &Config{}
	cfg.Auth.PINHash = "$2a$10$abcdefghijklmnopqrstuv"
	cfg.Auth.SessionSecret = "0123456789abcdef"
	cfg.Auth.Lockout.MaxFailures = 3
	cfg.Backup.Dir = "/data/backups"
	cfg.Database.Driver = "sqlite"

	assert.NoError(t, Validate(cfg))
}
