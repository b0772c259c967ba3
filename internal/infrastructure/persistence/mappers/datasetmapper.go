package mappers

import (
	"gorm.io/datatypes"

	"hungrylist/internal/domain/backup"
	"hungrylist/internal/infrastructure/persistence/models"
)

// Artifact rows mirror table rows one to one; these helpers only rename.

func SectionRowToRecord(m *models.SectionModel) backup.SectionRecord {
	return backup.SectionRecord{
		ID:             m.ID,
		Name:           m.Name,
		NormalizedName: m.NormalizedName,
		Icon:           m.Icon,
		Color:          m.Color,
		CreatedAt:      m.CreatedAt.UTC(),
		UpdatedAt:      m.UpdatedAt.UTC(),
		DeletedAt:      utcPtr(m.DeletedAt),
	}
}

func SectionRecordToRow(r *backup.SectionRecord) models.SectionModel {
	return models.SectionModel{
		ID:             r.ID,
		Name:           r.Name,
		NormalizedName: r.NormalizedName,
		Icon:           r.Icon,
		Color:          r.Color,
		CreatedAt:      r.CreatedAt.UTC(),
		UpdatedAt:      r.UpdatedAt.UTC(),
		DeletedAt:      utcPtr(r.DeletedAt),
	}
}

func ItemRowToRecord(m *models.ItemModel) backup.ItemRecord {
	return backup.ItemRecord{
		ID:              m.ID,
		SectionID:       m.SectionID,
		Name:            m.Name,
		NormalizedName:  m.NormalizedName,
		Description:     m.Description,
		Priority:        m.Priority,
		RemindEveryDays: m.RemindEveryDays,
		Checked:         backup.Flag(m.Checked),
		Favorite:        backup.Flag(m.Favorite),
		RunningLow:      backup.Flag(m.RunningLow),
		LastCheckedAt:   utcPtr(m.LastCheckedAt),
		CreatedAt:       m.CreatedAt.UTC(),
		UpdatedAt:       m.UpdatedAt.UTC(),
		DeletedAt:       utcPtr(m.DeletedAt),
	}
}

func ItemRecordToRow(r *backup.ItemRecord) models.ItemModel {
	return models.ItemModel{
		ID:              r.ID,
		SectionID:       r.SectionID,
		Name:            r.Name,
		NormalizedName:  r.NormalizedName,
		Description:     r.Description,
		Priority:        r.Priority,
		RemindEveryDays: r.RemindEveryDays,
		Checked:         bool(r.Checked),
		Favorite:        bool(r.Favorite),
		RunningLow:      bool(r.RunningLow),
		LastCheckedAt:   utcPtr(r.LastCheckedAt),
		CreatedAt:       r.CreatedAt.UTC(),
		UpdatedAt:       r.UpdatedAt.UTC(),
		DeletedAt:       utcPtr(r.DeletedAt),
	}
}

func HistoryRowToRecord(m *models.HistoryEventModel) backup.HistoryRecord {
	rec := backup.HistoryRecord{
		ID:         m.ID,
		EntityType: m.EntityType,
		EntityID:   m.EntityID,
		Action:     m.Action,
		CreatedAt:  m.CreatedAt.UTC(),
	}
	if len(m.PayloadJSON) > 0 {
		payload := string(m.PayloadJSON)
		rec.PayloadJSON = &payload
	}
	return rec
}

func HistoryRecordToRow(r *backup.HistoryRecord) models.HistoryEventModel {
	row := models.HistoryEventModel{
		ID:         r.ID,
		EntityType: r.EntityType,
		EntityID:   r.EntityID,
		Action:     r.Action,
		CreatedAt:  r.CreatedAt.UTC(),
	}
	if r.PayloadJSON != nil {
		row.PayloadJSON = datatypes.JSON(*r.PayloadJSON)
	}
	return row
}
