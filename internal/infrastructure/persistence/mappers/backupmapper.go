package mappers

import (
	"hungrylist/internal/domain/backup"
	"hungrylist/internal/infrastructure/persistence/models"
)

func BackupToModel(entity *backup.Record) *models.BackupModel {
	if entity == nil {
		return nil
	}
	return &models.BackupModel{
		ID:        entity.ID,
		Filename:  entity.Filename,
		Reason:    string(entity.Reason),
		CreatedAt: entity.CreatedAt,
	}
}

func BackupToDomain(model *models.BackupModel) *backup.Record {
	if model == nil {
		return nil
	}
	return &backup.Record{
		ID:        model.ID,
		Filename:  model.Filename,
		Reason:    backup.Reason(model.Reason),
		CreatedAt: model.CreatedAt.UTC(),
	}
}

func BackupsToDomain(rows []models.BackupModel) []*backup.Record {
	records := make([]*backup.Record, len(rows))
	for i := range rows {
		records[i] = BackupToDomain(&rows[i])
	}
	return records
}
