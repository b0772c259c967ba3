package mappers

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"hungrylist/internal/domain/history"
	"hungrylist/internal/infrastructure/persistence/models"
)

func HistoryToModel(entity *history.Event) (*models.HistoryEventModel, error) {
	if entity == nil {
		return nil, nil
	}
	model := &models.HistoryEventModel{
		ID:         entity.ID,
		EntityType: string(entity.EntityType),
		EntityID:   entity.EntityID,
		Action:     entity.Action,
		CreatedAt:  entity.CreatedAt,
	}
	if entity.Payload != nil {
		raw, err := json.Marshal(entity.Payload)
		if err != nil {
			return nil, fmt.Errorf("failed to encode history payload: %w", err)
		}
		model.PayloadJSON = datatypes.JSON(raw)
	}
	return model, nil
}

// HistoryToDomain decodes the payload leniently: a payload written by an
// older build that is not an object is kept under the "value" key.
func HistoryToDomain(model *models.HistoryEventModel) *history.Event {
	if model == nil {
		return nil
	}
	event := &history.Event{
		ID:         model.ID,
		EntityType: history.EntityType(model.EntityType),
		EntityID:   model.EntityID,
		Action:     model.Action,
		CreatedAt:  model.CreatedAt.UTC(),
	}
	if len(model.PayloadJSON) > 0 && string(model.PayloadJSON) != "null" {
		var payload map[string]any
		if err := json.Unmarshal(model.PayloadJSON, &payload); err == nil {
			event.Payload = payload
		} else {
			var value any
			if json.Unmarshal(model.PayloadJSON, &value) == nil {
				event.Payload = map[string]any{"value": value}
			}
		}
	}
	return event
}
