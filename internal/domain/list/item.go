package list

import (
	"context"
	"time"
)

type Priority string

const (
	PriorityMust     Priority = "must"
	PrioritySoon     Priority = "soon"
	PriorityOptional Priority = "optional"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityMust, PrioritySoon, PriorityOptional:
		return true
	}
	return false
}

// Item is one entry on the list.
type Item struct {
	ID              string
	SectionID       string
	Name            string
	NormalizedName  string
	Description     string
	Priority        Priority
	RemindEveryDays int
	Checked         bool
	Favorite        bool
	RunningLow      bool
	LastCheckedAt   *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
	DeletedAt       *time.Time
}

// ReminderDue reports whether a recurring item is due again at now.
func (i *Item) ReminderDue(now time.Time) bool {
	if i.RemindEveryDays <= 0 {
		return false
	}
	since := i.CreatedAt
	if i.LastCheckedAt != nil {
		since = *i.LastCheckedAt
	}
	return now.Sub(since) >= time.Duration(i.RemindEveryDays)*24*time.Hour
}

// ItemInput carries the writable fields of an item.
type ItemInput struct {
	SectionID       string
	Name            string
	Description     string
	Priority        Priority
	RemindEveryDays int
}

type CheckedFilter string

const (
	CheckedAll  CheckedFilter = "all"
	CheckedOnly CheckedFilter = "checked"
	CheckedNone CheckedFilter = "unchecked"
)

type ItemSort string

const (
	SortNameAsc     ItemSort = "name_asc"
	SortUpdatedDesc ItemSort = "updated_desc"
	SortPriority    ItemSort = "priority"
	SortCreatedDesc ItemSort = "created_desc"
)

// ItemFilter narrows an item listing. RemindersOnly is applied in memory
// because due-ness depends on the clock.
type ItemFilter struct {
	SectionID      string
	Search         string
	Checked        CheckedFilter
	Priority       Priority
	FavoritesOnly  bool
	RunningLowOnly bool
	RemindersOnly  bool
	Sort           ItemSort
}

type ItemRepository interface {
	List(ctx context.Context, filter ItemFilter) ([]*Item, error)
	Get(ctx context.Context, id string) (*Item, error)
	FindByNormalizedName(ctx context.Context, sectionID, normalized string) (*Item, error)
	Create(ctx context.Context, item *Item) error
	Update(ctx context.Context, item *Item) error
	SoftDeleteBySection(ctx context.Context, sectionID string, at time.Time) (int64, error)
}
