package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hungrylist/internal/domain/auth"
	"hungrylist/internal/infrastructure/persistence/mappers"
	"hungrylist/internal/infrastructure/persistence/models"
	"hungrylist/internal/shared/db"
)

type AuthFailureRepository struct {
	db *gorm.DB
}

func NewAuthFailureRepository(db *gorm.DB) auth.FailureRepository {
	return &AuthFailureRepository{db: db}
}

func (r *AuthFailureRepository) Get(ctx context.Context, clientID string) (*auth.FailureRecord, error) {
	var model models.AuthFailureModel
	err := db.GetTxFromContext(ctx, r.db).Where("client_id = ?", clientID).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get auth failure record: %w", err)
	}
	return mappers.FailureToDomain(&model), nil
}

// GetForUpdate locks the client's row for the transaction carried by ctx.
// A zero-count placeholder is inserted first so two transactions racing on a
// client without a record serialise on the same row instead of both reading
// nothing. The placeholder is reported as nil and is replaced by Save or
// discarded by rollback.
func (r *AuthFailureRepository) GetForUpdate(ctx context.Context, clientID string, now time.Time) (*auth.FailureRecord, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	placeholder := &models.AuthFailureModel{ClientID: clientID, FirstFailedAt: now.UTC(), LastFailedAt: now.UTC()}
	if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(placeholder).Error; err != nil {
		return nil, fmt.Errorf("failed to reserve auth failure record: %w", err)
	}

	var model models.AuthFailureModel
	err := tx.Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}).
		Where("client_id = ?", clientID).
		First(&model).Error
	if err != nil {
		return nil, fmt.Errorf("failed to lock auth failure record: %w", err)
	}
	if model.FailureCount == 0 {
		return nil, nil
	}
	return mappers.FailureToDomain(&model), nil
}

// Save inserts or overwrites the record for its client.
func (r *AuthFailureRepository) Save(ctx context.Context, record *auth.FailureRecord) error {
	model := mappers.FailureToModel(record)
	err := db.GetTxFromContext(ctx, r.db).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "client_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"failure_count", "first_failed_at", "last_failed_at", "blocked_until"}),
		}).
		Create(model).Error
	if err != nil {
		return fmt.Errorf("failed to save auth failure record: %w", err)
	}
	return nil
}

func (r *AuthFailureRepository) Delete(ctx context.Context, clientID string) error {
	err := db.GetTxFromContext(ctx, r.db).Where("client_id = ?", clientID).Delete(&models.AuthFailureModel{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete auth failure record: %w", err)
	}
	return nil
}
