// Package list models the household's sections and the items in them.
package list

import (
	"context"
	"time"
)

// Section groups items, e.g. "Indian Grocery". A deleted section is a
// tombstone: creating one with the same normalized name brings it back.
type Section struct {
	ID             string
	Name           string
	NormalizedName string
	Icon           string
	Color          string
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      *time.Time
}

func (s *Section) IsDeleted() bool {
	return s.DeletedAt != nil
}

// SectionInput carries the writable fields of a section.
type SectionInput struct {
	Name  string
	Icon  string
	Color string
}

type SectionRepository interface {
	List(ctx context.Context, includeDeleted bool) ([]*Section, error)
	Get(ctx context.Context, id string) (*Section, error)
	FindByNormalizedName(ctx context.Context, normalized string) (*Section, error)
	CountActive(ctx context.Context) (int64, error)
	Create(ctx context.Context, section *Section) error
	Update(ctx context.Context, section *Section) error
}
