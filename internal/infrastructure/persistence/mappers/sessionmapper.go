package mappers

import (
	"hungrylist/internal/domain/auth"
	"hungrylist/internal/infrastructure/persistence/models"
)

// SessionMapper handles the conversion between Session domain entities and persistence models.
type SessionMapper interface {
	ToModel(entity *auth.Session) *models.SessionModel
	ToDomain(model *models.SessionModel) *auth.Session
}

type SessionMapperImpl struct{}

func NewSessionMapper() SessionMapper {
	return &SessionMapperImpl{}
}

func (m *SessionMapperImpl) ToModel(entity *auth.Session) *models.SessionModel {
	if entity == nil {
		return nil
	}
	return &models.SessionModel{
		ID:        entity.ID,
		TokenHash: entity.TokenHash,
		Trusted:   entity.Trusted,
		IPAddress: entity.IPAddress,
		UserAgent: entity.UserAgent,
		CreatedAt: entity.CreatedAt,
		ExpiresAt: entity.ExpiresAt,
		RevokedAt: entity.RevokedAt,
	}
}

func (m *SessionMapperImpl) ToDomain(model *models.SessionModel) *auth.Session {
	if model == nil {
		return nil
	}
	return &auth.Session{
		ID:        model.ID,
		TokenHash: model.TokenHash,
		Trusted:   model.Trusted,
		IPAddress: model.IPAddress,
		UserAgent: model.UserAgent,
		CreatedAt: model.CreatedAt.UTC(),
		ExpiresAt: model.ExpiresAt.UTC(),
		RevokedAt: utcPtr(model.RevokedAt),
	}
}
