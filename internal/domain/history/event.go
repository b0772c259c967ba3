// Package history models the append-only audit ledger.
package history

import (
	"context"
	"time"
)

// EntityType names what an event is about.
type EntityType string

const (
	EntitySection EntityType = "section"
	EntityItem    EntityType = "item"
	EntityBackup  EntityType = "backup"
	EntitySystem  EntityType = "system"
)

// Standard action tags.
const (
	ActionCreated       = "created"
	ActionUpdated       = "updated"
	ActionDeleted       = "deleted"
	ActionRestored      = "restored"
	ActionChecked       = "checked"
	ActionUnchecked     = "unchecked"
	ActionFavorited     = "favorited"
	ActionUnfavorited   = "unfavorited"
	ActionRunningLowOn  = "running_low_on"
	ActionRunningLowOff = "running_low_off"
)

// Event is one immutable ledger entry. Payload may be nil.
type Event struct {
	ID         string
	EntityType EntityType
	EntityID   string
	Action     string
	Payload    map[string]any
	CreatedAt  time.Time
}

// Filter narrows a ledger listing. Zero values mean no constraint.
type Filter struct {
	EntityType EntityType
	EntityID   string
	Limit      int
}

type Repository interface {
	Append(ctx context.Context, event *Event) error
	List(ctx context.Context, filter Filter) ([]*Event, error)
}
