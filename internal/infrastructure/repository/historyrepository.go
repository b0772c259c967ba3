package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"hungrylist/internal/domain/history"
	"hungrylist/internal/infrastructure/persistence/mappers"
	"hungrylist/internal/infrastructure/persistence/models"
	"hungrylist/internal/shared/db"
)

const (
	defaultHistoryLimit = 100
	maxHistoryLimit     = 500
)

type HistoryRepository struct {
	db *gorm.DB
}

func NewHistoryRepository(db *gorm.DB) history.Repository {
	return &HistoryRepository{db: db}
}

func (r *HistoryRepository) Append(ctx context.Context, event *history.Event) error {
	model, err := mappers.HistoryToModel(event)
	if err != nil {
		return err
	}
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to append history event: %w", err)
	}
	return nil
}

// List returns events newest first.
func (r *HistoryRepository) List(ctx context.Context, filter history.Filter) ([]*history.Event, error) {
	query := db.GetTxFromContext(ctx, r.db).Model(&models.HistoryEventModel{})
	if filter.EntityType != "" {
		query = query.Where("entity_type = ?", string(filter.EntityType))
	}
	if filter.EntityID != "" {
		query = query.Where("entity_id = ?", filter.EntityID)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}

	var rows []models.HistoryEventModel
	if err := query.Order("created_at DESC, id DESC").Limit(limit).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list history events: %w", err)
	}

	events := make([]*history.Event, len(rows))
	for i := range rows {
		events[i] = mappers.HistoryToDomain(&rows[i])
	}
	return events, nil
}
