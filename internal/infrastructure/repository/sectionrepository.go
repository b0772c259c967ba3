package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"hungrylist/internal/domain/list"
	"hungrylist/internal/infrastructure/persistence/mappers"
	"hungrylist/internal/infrastructure/persistence/models"
	"hungrylist/internal/shared/db"
)

type SectionRepository struct {
	db *gorm.DB
}

func NewSectionRepository(db *gorm.DB) list.SectionRepository {
	return &SectionRepository{db: db}
}

func (r *SectionRepository) List(ctx context.Context, includeDeleted bool) ([]*list.Section, error) {
	query := db.GetTxFromContext(ctx, r.db).Model(&models.SectionModel{})
	if !includeDeleted {
		query = query.Scopes(db.NotDeleted())
	}

	var rows []models.SectionModel
	if err := query.Order("created_at ASC, id ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list sections: %w", err)
	}

	sections := make([]*list.Section, len(rows))
	for i := range rows {
		sections[i] = mappers.SectionToDomain(&rows[i])
	}
	return sections, nil
}

// Get returns the section with id, tombstones included, or nil.
func (r *SectionRepository) Get(ctx context.Context, id string) (*list.Section, error) {
	return r.findOne(ctx, "id = ?", id)
}

// FindByNormalizedName prefers an active section over a tombstone.
func (r *SectionRepository) FindByNormalizedName(ctx context.Context, normalized string) (*list.Section, error) {
	return r.findOne(ctx, "normalized_name = ?", normalized)
}

func (r *SectionRepository) findOne(ctx context.Context, query string, args ...any) (*list.Section, error) {
	var model models.SectionModel
	err := db.GetTxFromContext(ctx, r.db).
		Where(query, args...).
		Order("CASE WHEN deleted_at IS NULL THEN 0 ELSE 1 END, updated_at DESC").
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get section: %w", err)
	}
	return mappers.SectionToDomain(&model), nil
}

func (r *SectionRepository) CountActive(ctx context.Context) (int64, error) {
	var count int64
	if err := db.GetTxFromContext(ctx, r.db).Model(&models.SectionModel{}).Scopes(db.NotDeleted()).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count sections: %w", err)
	}
	return count, nil
}

func (r *SectionRepository) Create(ctx context.Context, section *list.Section) error {
	if err := db.GetTxFromContext(ctx, r.db).Create(mappers.SectionToModel(section)).Error; err != nil {
		return fmt.Errorf("failed to create section: %w", err)
	}
	return nil
}

// Update writes every column, so a cleared deleted_at is persisted too.
func (r *SectionRepository) Update(ctx context.Context, section *list.Section) error {
	result := db.GetTxFromContext(ctx, r.db).Save(mappers.SectionToModel(section))
	if result.Error != nil {
		return fmt.Errorf("failed to update section: %w", result.Error)
	}
	return nil
}
