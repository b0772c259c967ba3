// Package list implements section and item management.
package list

import (
	"context"
	"fmt"

	"hungrylist/internal/application/history"
	historydomain "hungrylist/internal/domain/history"
	"hungrylist/internal/domain/list"
	"hungrylist/internal/shared/biztime"
	"hungrylist/internal/shared/db"
	"hungrylist/internal/shared/errors"
	"hungrylist/internal/shared/id"
	"hungrylist/internal/shared/logger"
)

// DefaultSections are seeded into an empty database.
var DefaultSections = []list.SectionInput{
	{Name: "Indian Grocery", Icon: "🌶️", Color: "#f97316"},
	{Name: "Asian Grocery", Icon: "🥢", Color: "#06b6d4"},
}

type SectionService struct {
	sections list.SectionRepository
	items    list.ItemRepository
	ledger   history.Recorder
	tx       db.Transactor
	clock    biztime.Clock
	newID    id.Generator
	logger   logger.Interface
}

func NewSectionService(
	sections list.SectionRepository,
	items list.ItemRepository,
	ledger history.Recorder,
	tx db.Transactor,
	clock biztime.Clock,
	newID id.Generator,
	log logger.Interface,
) *SectionService {
	if newID == nil {
		newID = id.New
	}
	return &SectionService{
		sections: sections,
		items:    items,
		ledger:   ledger,
		tx:       tx,
		clock:    clock,
		newID:    newID,
		logger:   log,
	}
}

func (s *SectionService) List(ctx context.Context, includeDeleted bool) ([]*list.Section, error) {
	sections, err := s.sections.List(ctx, includeDeleted)
	if err != nil {
		return nil, fmt.Errorf("list sections: %w", err)
	}
	return sections, nil
}

// Create adds a section. A tombstone with the same normalized name is
// brought back instead, and restored is true.
func (s *SectionService) Create(ctx context.Context, in list.SectionInput) (section *list.Section, restored bool, err error) {
	normalized := list.NormalizeName(in.Name)

	err = s.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		existing, err := s.sections.FindByNormalizedName(ctx, normalized)
		if err != nil {
			return err
		}
		if existing != nil && !existing.IsDeleted() {
			return list.ErrDuplicateSection()
		}

		now := s.clock.Now()
		if existing != nil {
			existing.Name = in.Name
			existing.NormalizedName = normalized
			existing.Icon = in.Icon
			existing.Color = in.Color
			existing.UpdatedAt = now
			existing.DeletedAt = nil
			if err := s.sections.Update(ctx, existing); err != nil {
				return err
			}
			section, restored = existing, true
			return s.ledger.Record(ctx, historydomain.EntitySection, existing.ID, historydomain.ActionRestored, sectionPayload(in))
		}

		section = &list.Section{
			ID:             s.newID(),
			Name:           in.Name,
			NormalizedName: normalized,
			Icon:           in.Icon,
			Color:          in.Color,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if err := s.sections.Create(ctx, section); err != nil {
			if errors.IsDuplicateError(err) {
				return list.ErrDuplicateSection()
			}
			return err
		}
		return s.ledger.Record(ctx, historydomain.EntitySection, section.ID, historydomain.ActionCreated, sectionPayload(in))
	})
	if err != nil {
		return nil, false, err
	}

	s.logger.Infow("section saved", "section_id", section.ID, "restored", restored)
	return section, restored, nil
}

func (s *SectionService) Update(ctx context.Context, sectionID string, in list.SectionInput) (*list.Section, error) {
	normalized := list.NormalizeName(in.Name)

	var section *list.Section
	err := s.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		if section, err = s.activeSection(ctx, sectionID); err != nil {
			return err
		}

		dup, err := s.sections.FindByNormalizedName(ctx, normalized)
		if err != nil {
			return err
		}
		if dup != nil && !dup.IsDeleted() && dup.ID != sectionID {
			return list.ErrDuplicateSection()
		}

		section.Name = in.Name
		section.NormalizedName = normalized
		section.Icon = in.Icon
		section.Color = in.Color
		section.UpdatedAt = s.clock.Now()
		if err := s.sections.Update(ctx, section); err != nil {
			if errors.IsDuplicateError(err) {
				return list.ErrDuplicateSection()
			}
			return err
		}
		return s.ledger.Record(ctx, historydomain.EntitySection, sectionID, historydomain.ActionUpdated, sectionPayload(in))
	})
	if err != nil {
		return nil, err
	}
	return section, nil
}

// Delete tombstones a section and every active item in it. The last active
// section cannot be deleted.
func (s *SectionService) Delete(ctx context.Context, sectionID string) error {
	return s.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		section, err := s.activeSection(ctx, sectionID)
		if err != nil {
			return err
		}

		active, err := s.sections.CountActive(ctx)
		if err != nil {
			return err
		}
		if active <= 1 {
			return list.ErrLastSection()
		}

		now := s.clock.Now()
		section.DeletedAt = &now
		section.UpdatedAt = now
		if err := s.sections.Update(ctx, section); err != nil {
			return err
		}
		n, err := s.items.SoftDeleteBySection(ctx, sectionID, now)
		if err != nil {
			return err
		}

		s.logger.Infow("section deleted", "section_id", sectionID, "items_deleted", n)
		return s.ledger.Record(ctx, historydomain.EntitySection, sectionID, historydomain.ActionDeleted, nil)
	})
}

// Bootstrap seeds DefaultSections when no active section exists. It returns
// how many sections it created.
func (s *SectionService) Bootstrap(ctx context.Context) (int, error) {
	created := 0
	err := s.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		active, err := s.sections.CountActive(ctx)
		if err != nil {
			return err
		}
		if active > 0 {
			return nil
		}

		now := s.clock.Now()
		for _, in := range DefaultSections {
			normalized := list.NormalizeName(in.Name)
			existing, err := s.sections.FindByNormalizedName(ctx, normalized)
			if err != nil {
				return err
			}
			if existing != nil {
				existing.DeletedAt = nil
				existing.UpdatedAt = now
				if err := s.sections.Update(ctx, existing); err != nil {
					return err
				}
				created++
				continue
			}
			if err := s.sections.Create(ctx, &list.Section{
				ID:             s.newID(),
				Name:           in.Name,
				NormalizedName: normalized,
				Icon:           in.Icon,
				Color:          in.Color,
				CreatedAt:      now,
				UpdatedAt:      now,
			}); err != nil {
				return err
			}
			created++
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("bootstrap default sections: %w", err)
	}
	if created > 0 {
		s.logger.Infow("seeded default sections", "count", created)
	}
	return created, nil
}

func (s *SectionService) activeSection(ctx context.Context, sectionID string) (*list.Section, error) {
	section, err := s.sections.Get(ctx, sectionID)
	if err != nil {
		return nil, err
	}
	if section == nil || section.IsDeleted() {
		return nil, list.ErrSectionNotFound()
	}
	return section, nil
}

func sectionPayload(in list.SectionInput) map[string]any {
	return map[string]any{"name": in.Name, "icon": in.Icon, "color": in.Color}
}
