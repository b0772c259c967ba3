package models

import (
	"time"

	"gorm.io/datatypes"
)

// HistoryEventModel is an append-only ledger row. PayloadJSON is NULL when
// the event carries no payload.
type HistoryEventModel struct {
	ID          string         `gorm:"primarykey;size:36"`
	EntityType  string         `gorm:"size:20;not null;index:idx_history_entity"`
	EntityID    string         `gorm:"size:64;not null;index:idx_history_entity"`
	Action      string         `gorm:"size:32;not null"`
	PayloadJSON datatypes.JSON `gorm:"column:payload_json"`
	CreatedAt   time.Time      `gorm:"not null;index"`
}

func (HistoryEventModel) TableName() string {
	return "history_events"
}
