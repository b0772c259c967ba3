package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"hungrylist/internal/domain/backup"
	"hungrylist/internal/infrastructure/persistence/mappers"
	"hungrylist/internal/infrastructure/persistence/models"
	"hungrylist/internal/shared/db"
)

// insertBatchSize keeps bulk inserts under sqlite's bound-variable limit.
const insertBatchSize = 200

type DatasetRepository struct {
	db *gorm.DB
}

func NewDatasetRepository(db *gorm.DB) backup.DatasetRepository {
	return &DatasetRepository{db: db}
}

// Export reads every row of the primary tables, tombstones included.
func (r *DatasetRepository) Export(ctx context.Context) (*backup.Dataset, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var sections []models.SectionModel
	if err := tx.Order("created_at ASC, id ASC").Find(&sections).Error; err != nil {
		return nil, fmt.Errorf("failed to export sections: %w", err)
	}
	var items []models.ItemModel
	if err := tx.Order("created_at ASC, id ASC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to export items: %w", err)
	}
	var events []models.HistoryEventModel
	if err := tx.Order("created_at ASC, id ASC").Find(&events).Error; err != nil {
		return nil, fmt.Errorf("failed to export history events: %w", err)
	}

	ds := &backup.Dataset{
		Sections:      make([]backup.SectionRecord, len(sections)),
		Items:         make([]backup.ItemRecord, len(items)),
		HistoryEvents: make([]backup.HistoryRecord, len(events)),
	}
	for i := range sections {
		ds.Sections[i] = mappers.SectionRowToRecord(&sections[i])
	}
	for i := range items {
		ds.Items[i] = mappers.ItemRowToRecord(&items[i])
	}
	for i := range events {
		ds.HistoryEvents[i] = mappers.HistoryRowToRecord(&events[i])
	}
	return ds, nil
}

// Replace clears history, items and sections, in that order, and inserts
// ds with its ids and timestamps untouched.
func (r *DatasetRepository) Replace(ctx context.Context, ds *backup.Dataset) error {
	tx := db.GetTxFromContext(ctx, r.db)

	for _, table := range []any{&models.HistoryEventModel{}, &models.ItemModel{}, &models.SectionModel{}} {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(table).Error; err != nil {
			return fmt.Errorf("failed to clear table: %w", err)
		}
	}

	if len(ds.Sections) > 0 {
		rows := make([]models.SectionModel, len(ds.Sections))
		for i := range ds.Sections {
			rows[i] = mappers.SectionRecordToRow(&ds.Sections[i])
		}
		if err := tx.CreateInBatches(rows, insertBatchSize).Error; err != nil {
			return fmt.Errorf("failed to insert sections: %w", err)
		}
	}
	if len(ds.Items) > 0 {
		rows := make([]models.ItemModel, len(ds.Items))
		for i := range ds.Items {
			rows[i] = mappers.ItemRecordToRow(&ds.Items[i])
		}
		if err := tx.CreateInBatches(rows, insertBatchSize).Error; err != nil {
			return fmt.Errorf("failed to insert items: %w", err)
		}
	}
	if len(ds.HistoryEvents) > 0 {
		rows := make([]models.HistoryEventModel, len(ds.HistoryEvents))
		for i := range ds.HistoryEvents {
			rows[i] = mappers.HistoryRecordToRow(&ds.HistoryEvents[i])
		}
		if err := tx.CreateInBatches(rows, insertBatchSize).Error; err != nil {
			return fmt.Errorf("failed to insert history events: %w", err)
		}
	}
	return nil
}

func (r *DatasetRepository) CountActiveSections(ctx context.Context) (int64, error) {
	var count int64
	err := db.GetTxFromContext(ctx, r.db).Model(&models.SectionModel{}).Scopes(db.NotDeleted()).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count active sections: %w", err)
	}
	return count, nil
}
