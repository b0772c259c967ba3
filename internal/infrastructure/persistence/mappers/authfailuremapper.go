package mappers

import (
	"hungrylist/internal/domain/auth"
	"hungrylist/internal/infrastructure/persistence/models"
)

func FailureToModel(entity *auth.FailureRecord) *models.AuthFailureModel {
	if entity == nil {
		return nil
	}
	return &models.AuthFailureModel{
		ClientID:      entity.ClientID,
		FailureCount:  entity.FailureCount,
		FirstFailedAt: entity.FirstFailedAt,
		LastFailedAt:  entity.LastFailedAt,
		BlockedUntil:  entity.BlockedUntil,
	}
}

func FailureToDomain(model *models.AuthFailureModel) *auth.FailureRecord {
	if model == nil {
		return nil
	}
	return &auth.FailureRecord{
		ClientID:      model.ClientID,
		FailureCount:  model.FailureCount,
		FirstFailedAt: model.FirstFailedAt.UTC(),
		LastFailedAt:  model.LastFailedAt.UTC(),
		BlockedUntil:  utcPtr(model.BlockedUntil),
	}
}
