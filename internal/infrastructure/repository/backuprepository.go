package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"hungrylist/internal/domain/backup"
	"hungrylist/internal/infrastructure/persistence/mappers"
	"hungrylist/internal/infrastructure/persistence/models"
	"hungrylist/internal/shared/db"
)

type BackupRepository struct {
	db *gorm.DB
}

func NewBackupRepository(db *gorm.DB) backup.Repository {
	return &BackupRepository{db: db}
}

func (r *BackupRepository) FindByID(ctx context.Context, id string) (*backup.Record, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *BackupRepository) FindByFilename(ctx context.Context, filename string) (*backup.Record, error) {
	return r.findOne(ctx, "filename = ?", filename)
}

func (r *BackupRepository) FindByReasonSince(ctx context.Context, reason backup.Reason, since time.Time) (*backup.Record, error) {
	return r.findOne(ctx, "reason = ? AND created_at >= ?", string(reason), since.UTC())
}

func (r *BackupRepository) findOne(ctx context.Context, query string, args ...any) (*backup.Record, error) {
	var model models.BackupModel
	err := db.GetTxFromContext(ctx, r.db).Where(query, args...).Order("created_at DESC").First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get backup: %w", err)
	}
	return mappers.BackupToDomain(&model), nil
}

// List returns every record, newest first.
func (r *BackupRepository) List(ctx context.Context) ([]*backup.Record, error) {
	var rows []models.BackupModel
	if err := db.GetTxFromContext(ctx, r.db).Order("created_at DESC, id DESC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list backups: %w", err)
	}
	return mappers.BackupsToDomain(rows), nil
}

func (r *BackupRepository) Create(ctx context.Context, record *backup.Record) error {
	if err := db.GetTxFromContext(ctx, r.db).Create(mappers.BackupToModel(record)).Error; err != nil {
		return fmt.Errorf("failed to create backup record: %w", err)
	}
	return nil
}

func (r *BackupRepository) Delete(ctx context.Context, id string) error {
	if err := db.GetTxFromContext(ctx, r.db).Where("id = ?", id).Delete(&models.BackupModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete backup record: %w", err)
	}
	return nil
}
