package handlers

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"hungrylist/internal/domain/history"
	"hungrylist/internal/shared/utils"
)

type historyReader interface {
	List(ctx context.Context, filter history.Filter) ([]*history.Event, error)
}

type HistoryHandler struct {
	reader historyReader
}

func NewHistoryHandler(reader historyReader) *HistoryHandler {
	return &HistoryHandler{reader: reader}
}

const defaultHistoryLimit = 100

type ListHistoryQuery struct {
	EntityType string `form:"entityType" validate:"omitempty,oneof=section item backup system"`
	EntityID   string `form:"entityId"`
	Limit      int    `form:"limit" validate:"omitempty,min=1,max=1000"`
}

type HistoryEventResponse struct {
	ID         string         `json:"id"`
	EntityType string         `json:"entityType"`
	EntityID   string         `json:"entityId"`
	Action     string         `json:"action"`
	Payload    map[string]any `json:"payload"`
	CreatedAt  time.Time      `json:"createdAt"`
}

// List handles GET /api/history, newest first.
func (h *HistoryHandler) List(c *gin.Context) {
	var query ListHistoryQuery
	if err := bindQuery(c, &query); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	if query.Limit == 0 {
		query.Limit = defaultHistoryLimit
	}

	events, err := h.reader.List(c.Request.Context(), history.Filter{
		EntityType: history.EntityType(query.EntityType),
		EntityID:   query.EntityID,
		Limit:      query.Limit,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	out := make([]*HistoryEventResponse, len(events))
	for i, e := range events {
		out[i] = &HistoryEventResponse{
			ID:         e.ID,
			EntityType: string(e.EntityType),
			EntityID:   e.EntityID,
			Action:     e.Action,
			Payload:    e.Payload,
			CreatedAt:  e.CreatedAt,
		}
	}
	utils.OK(c, out)
}
