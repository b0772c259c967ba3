package migration

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"hungrylist/internal/shared/logger"
)

// Generator scaffolds new migration files on disk, next to the embedded ones.
type Generator struct {
	scriptsPath string
	logger      logger.Interface
	now         func() time.Time
}

func NewGenerator(scriptsPath string) *Generator {
	return &Generator{
		scriptsPath: scriptsPath,
		logger:      logger.NewLogger().Named("migration.generator"),
		now:         time.Now,
	}
}

// CreateMigration writes one goose file and one golang-migrate up/down pair
// per dialect, returning the paths it created.
func (g *Generator) CreateMigration(name string) ([]string, error) {
	stamp := g.now().UTC().Format("20060102150405")
	var created []string

	for _, dialect := range []string{"sqlite", "mysql"} {
		gooseDir := filepath.Join(g.scriptsPath, "goose", dialect)
		path := filepath.Join(gooseDir, fmt.Sprintf("%s_%s.sql", stamp, name))
		if err := g.writeFile(path, gooseTemplate(name)); err != nil {
			return created, err
		}
		created = append(created, path)

		migrateDir := filepath.Join(g.scriptsPath, "migrate", dialect)
		for _, direction := range []string{"up", "down"} {
			path := filepath.Join(migrateDir, fmt.Sprintf("%s_%s.%s.sql", stamp, name, direction))
			if err := g.writeFile(path, fmt.Sprintf("-- %s migration: %s\n", direction, name)); err != nil {
				return created, err
			}
			created = append(created, path)
		}
	}

	g.logger.Infow("migration files created", "name", name, "files", len(created))
	return created, nil
}

func (g *Generator) writeFile(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create scripts directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func gooseTemplate(name string) string {
	return fmt.Sprintf(`-- Migration: %s

-- +goose Up

-- +goose Down
`, name)
}
