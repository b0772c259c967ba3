package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"hungrylist/internal/domain/auth"
	"hungrylist/internal/infrastructure/persistence/mappers"
	"hungrylist/internal/infrastructure/persistence/models"
	"hungrylist/internal/shared/db"
)

type SessionRepository struct {
	db     *gorm.DB
	mapper mappers.SessionMapper
}

func NewSessionRepository(db *gorm.DB) auth.SessionRepository {
	return &SessionRepository{
		db:     db,
		mapper: mappers.NewSessionMapper(),
	}
}

func (r *SessionRepository) Create(ctx context.Context, session *auth.Session) error {
	model := r.mapper.ToModel(session)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

func (r *SessionRepository) FindValidByTokenHash(ctx context.Context, tokenHash string, now time.Time) (*auth.Session, error) {
	var model models.SessionModel
	err := db.GetTxFromContext(ctx, r.db).
		Where("token_hash = ? AND revoked_at IS NULL AND expires_at > ?", tokenHash, now.UTC()).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get session by token hash: %w", err)
	}
	return r.mapper.ToDomain(&model), nil
}

func (r *SessionRepository) RevokeByTokenHash(ctx context.Context, tokenHash string, now time.Time) (int64, error) {
	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.SessionModel{}).
		Where("token_hash = ? AND revoked_at IS NULL AND expires_at > ?", tokenHash, now.UTC()).
		Update("revoked_at", now.UTC())
	if result.Error != nil {
		return 0, fmt.Errorf("failed to revoke session: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *SessionRepository) RevokeAllValid(ctx context.Context, now time.Time) (int64, error) {
	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.SessionModel{}).
		Where("revoked_at IS NULL AND expires_at > ?", now.UTC()).
		Update("revoked_at", now.UTC())
	if result.Error != nil {
		return 0, fmt.Errorf("failed to revoke sessions: %w", result.Error)
	}
	return result.RowsAffected, nil
}
