package mappers

import (
	"hungrylist/internal/domain/list"
	"hungrylist/internal/infrastructure/persistence/models"
)

func SectionToModel(entity *list.Section) *models.SectionModel {
	if entity == nil {
		return nil
	}
	return &models.SectionModel{
		ID:             entity.ID,
		Name:           entity.Name,
		NormalizedName: entity.NormalizedName,
		Icon:           entity.Icon,
		Color:          entity.Color,
		CreatedAt:      entity.CreatedAt,
		UpdatedAt:      entity.UpdatedAt,
		DeletedAt:      entity.DeletedAt,
	}
}

func SectionToDomain(model *models.SectionModel) *list.Section {
	if model == nil {
		return nil
	}
	return &list.Section{
		ID:             model.ID,
		Name:           model.Name,
		NormalizedName: model.NormalizedName,
		Icon:           model.Icon,
		Color:          model.Color,
		CreatedAt:      model.CreatedAt.UTC(),
		UpdatedAt:      model.UpdatedAt.UTC(),
		DeletedAt:      utcPtr(model.DeletedAt),
	}
}

func ItemToModel(entity *list.Item) *models.ItemModel {
	if entity == nil {
		return nil
	}
	return &models.ItemModel{
		ID:              entity.ID,
		SectionID:       entity.SectionID,
		Name:            entity.Name,
		NormalizedName:  entity.NormalizedName,
		Description:     entity.Description,
		Priority:        string(entity.Priority),
		RemindEveryDays: entity.RemindEveryDays,
		Checked:         entity.Checked,
		Favorite:        entity.Favorite,
		RunningLow:      entity.RunningLow,
		LastCheckedAt:   entity.LastCheckedAt,
		CreatedAt:       entity.CreatedAt,
		UpdatedAt:       entity.UpdatedAt,
		DeletedAt:       entity.DeletedAt,
	}
}

func ItemToDomain(model *models.ItemModel) *list.Item {
	if model == nil {
		return nil
	}
	return &list.Item{
		ID:              model.ID,
		SectionID:       model.SectionID,
		Name:            model.Name,
		NormalizedName:  model.NormalizedName,
		Description:     model.Description,
		Priority:        list.Priority(model.Priority),
		RemindEveryDays: model.RemindEveryDays,
		Checked:         model.Checked,
		Favorite:        model.Favorite,
		RunningLow:      model.RunningLow,
		LastCheckedAt:   utcPtr(model.LastCheckedAt),
		CreatedAt:       model.CreatedAt.UTC(),
		UpdatedAt:       model.UpdatedAt.UTC(),
		DeletedAt:       utcPtr(model.DeletedAt),
	}
}
