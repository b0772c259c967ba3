package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"hungrylist/internal/domain/list"
	"hungrylist/internal/infrastructure/persistence/mappers"
	"hungrylist/internal/infrastructure/persistence/models"
	"hungrylist/internal/shared/db"
)

// itemOrderBy maps sort keys to ORDER BY clauses. Keys outside the map fall
// back to name order.
var itemOrderBy = map[list.ItemSort]string{
	list.SortNameAsc:     "normalized_name ASC, id ASC",
	list.SortUpdatedDesc: "updated_at DESC, id ASC",
	list.SortCreatedDesc: "created_at DESC, id ASC",
	list.SortPriority:    "CASE priority WHEN 'must' THEN 0 WHEN 'soon' THEN 1 ELSE 2 END ASC, updated_at DESC, id ASC",
}

type ItemRepository struct {
	db *gorm.DB
}

func NewItemRepository(db *gorm.DB) list.ItemRepository {
	return &ItemRepository{db: db}
}

// List returns active items matching filter. RemindersOnly is left to the
// caller.
func (r *ItemRepository) List(ctx context.Context, filter list.ItemFilter) ([]*list.Item, error) {
	query := db.GetTxFromContext(ctx, r.db).Model(&models.ItemModel{}).Scopes(db.NotDeleted())

	if filter.SectionID != "" {
		query = query.Where("section_id = ?", filter.SectionID)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + escapeLike(list.NormalizeName(search)) + "%"
		query = query.Where("(normalized_name LIKE ? ESCAPE '!' OR LOWER(description) LIKE ? ESCAPE '!')", pattern, pattern)
	}
	switch filter.Checked {
	case list.CheckedOnly:
		query = query.Where("checked = ?", true)
	case list.CheckedNone:
		query = query.Where("checked = ?", false)
	}
	if filter.Priority != "" {
		query = query.Where("priority = ?", string(filter.Priority))
	}
	if filter.FavoritesOnly {
		query = query.Where("favorite = ?", true)
	}
	if filter.RunningLowOnly {
		query = query.Where("running_low = ?", true)
	}

	orderBy, ok := itemOrderBy[filter.Sort]
	if !ok {
		orderBy = itemOrderBy[list.SortNameAsc]
	}

	var rows []models.ItemModel
	if err := query.Order(orderBy).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}

	items := make([]*list.Item, len(rows))
	for i := range rows {
		items[i] = mappers.ItemToDomain(&rows[i])
	}
	return items, nil
}

func (r *ItemRepository) Get(ctx context.Context, id string) (*list.Item, error) {
	return r.findOne(ctx, "id = ?", id)
}

// FindByNormalizedName prefers an active item over a tombstone.
func (r *ItemRepository) FindByNormalizedName(ctx context.Context, sectionID, normalized string) (*list.Item, error) {
	return r.findOne(ctx, "section_id = ? AND normalized_name = ?", sectionID, normalized)
}

func (r *ItemRepository) findOne(ctx context.Context, query string, args ...any) (*list.Item, error) {
	var model models.ItemModel
	err := db.GetTxFromContext(ctx, r.db).
		Where(query, args...).
		Order("CASE WHEN deleted_at IS NULL THEN 0 ELSE 1 END, updated_at DESC").
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get item: %w", err)
	}
	return mappers.ItemToDomain(&model), nil
}

func (r *ItemRepository) Create(ctx context.Context, item *list.Item) error {
	if err := db.GetTxFromContext(ctx, r.db).Create(mappers.ItemToModel(item)).Error; err != nil {
		return fmt.Errorf("failed to create item: %w", err)
	}
	return nil
}

func (r *ItemRepository) Update(ctx context.Context, item *list.Item) error {
	if err := db.GetTxFromContext(ctx, r.db).Save(mappers.ItemToModel(item)).Error; err != nil {
		return fmt.Errorf("failed to update item: %w", err)
	}
	return nil
}

func (r *ItemRepository) SoftDeleteBySection(ctx context.Context, sectionID string, at time.Time) (int64, error) {
	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.ItemModel{}).
		Scopes(db.NotDeleted()).
		Where("section_id = ?", sectionID).
		Updates(map[string]any{"deleted_at": at.UTC(), "updated_at": at.UTC()})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete section items: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`!`, `!!`, `%`, `!%`, `_`, `!_`).Replace(s)
}
