// Package history records and reads the audit ledger.
package history

import (
	"context"
	"fmt"

	"hungrylist/internal/domain/history"
	"hungrylist/internal/shared/biztime"
	"hungrylist/internal/shared/id"
	"hungrylist/internal/shared/logger"
)

// Recorder is the write side other services depend on.
type Recorder interface {
	Record(ctx context.Context, entityType history.EntityType, entityID, action string, payload map[string]any) error
}

// Ledger appends events and lists them newest first. Record joins any
// transaction carried by ctx, so an event commits or rolls back with the
// change it describes.
type Ledger struct {
	repo   history.Repository
	clock  biztime.Clock
	newID  id.Generator
	logger logger.Interface
}

func NewLedger(repo history.Repository, clock biztime.Clock, newID id.Generator, log logger.Interface) *Ledger {
	if newID == nil {
		newID = id.New
	}
	return &Ledger{repo: repo, clock: clock, newID: newID, logger: log}
}

func (l *Ledger) Record(ctx context.Context, entityType history.EntityType, entityID, action string, payload map[string]any) error {
	event := &history.Event{
		ID:         l.newID(),
		EntityType: entityType,
		EntityID:   entityID,
		Action:     action,
		Payload:    payload,
		CreatedAt:  l.clock.Now(),
	}
	if err := l.repo.Append(ctx, event); err != nil {
		l.logger.Errorw("failed to append history event",
			"entity_type", entityType, "entity_id", entityID, "action", action, "error", err)
		return fmt.Errorf("append history event: %w", err)
	}
	return nil
}

func (l *Ledger) List(ctx context.Context, filter history.Filter) ([]*history.Event, error) {
	events, err := l.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list history events: %w", err)
	}
	return events, nil
}
