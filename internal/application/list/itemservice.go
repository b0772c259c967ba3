package list

import (
	"context"
	"fmt"
	"time"

	"hungrylist/internal/application/history"
	"hungrylist/internal/application/list/dto"
	historydomain "hungrylist/internal/domain/history"
	"hungrylist/internal/domain/list"
	"hungrylist/internal/shared/biztime"
	"hungrylist/internal/shared/db"
	"hungrylist/internal/shared/errors"
	"hungrylist/internal/shared/id"
	"hungrylist/internal/shared/logger"
)

// DescriptionRenderer turns a Markdown description into sanitized HTML.
type DescriptionRenderer interface {
	ToHTML(markdown string) (string, error)
}

// View is a named preset of item filters used by the client tabs.
type View string

const (
	ViewMyList     View = "myList"
	ViewNextTrip   View = "nextTrip"
	ViewFavorites  View = "favorites"
	ViewRunningLow View = "runningLow"
	ViewReminders  View = "reminders"
)

// Apply narrows filter according to the view.
func (v View) Apply(filter *list.ItemFilter) {
	switch v {
	case ViewFavorites:
		filter.FavoritesOnly = true
	case ViewRunningLow:
		filter.RunningLowOnly = true
	case ViewReminders:
		filter.RemindersOnly = true
	}
}

type ItemService struct {
	items    list.ItemRepository
	sections list.SectionRepository
	ledger   history.Recorder
	tx       db.Transactor
	clock    biztime.Clock
	renderer DescriptionRenderer
	newID    id.Generator
	logger   logger.Interface
}

func NewItemService(
	items list.ItemRepository,
	sections list.SectionRepository,
	ledger history.Recorder,
	tx db.Transactor,
	clock biztime.Clock,
	renderer DescriptionRenderer,
	newID id.Generator,
	log logger.Interface,
) *ItemService {
	if newID == nil {
		newID = id.New
	}
	return &ItemService{
		items:    items,
		sections: sections,
		ledger:   ledger,
		tx:       tx,
		clock:    clock,
		renderer: renderer,
		newID:    newID,
		logger:   log,
	}
}

func (s *ItemService) List(ctx context.Context, filter list.ItemFilter) ([]*dto.ItemDTO, error) {
	items, err := s.items.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}

	now := s.clock.Now()
	out := make([]*dto.ItemDTO, 0, len(items))
	for _, item := range items {
		if filter.RemindersOnly && !item.ReminderDue(now) {
			continue
		}
		out = append(out, s.toDTO(item, now))
	}
	return out, nil
}

func (s *ItemService) Get(ctx context.Context, itemID string) (*dto.ItemDTO, error) {
	item, err := s.activeItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	return s.toDTO(item, s.clock.Now()), nil
}

// Create adds an item to an active section. A tombstone with the same
// normalized name in that section is reactivated instead and keeps its
// flags; restored reports which happened.
func (s *ItemService) Create(ctx context.Context, in list.ItemInput) (item *dto.ItemDTO, restored bool, err error) {
	in = withDefaults(in)
	normalized := list.NormalizeName(in.Name)

	var saved *list.Item
	err = s.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.ensureActiveSection(ctx, in.SectionID); err != nil {
			return err
		}

		existing, err := s.items.FindByNormalizedName(ctx, in.SectionID, normalized)
		if err != nil {
			return err
		}
		if existing != nil && existing.DeletedAt == nil {
			return list.ErrDuplicateItem()
		}

		now := s.clock.Now()
		if existing != nil {
			applyInput(existing, in, normalized)
			existing.DeletedAt = nil
			existing.UpdatedAt = now
			if err := s.items.Update(ctx, existing); err != nil {
				return err
			}
			saved, restored = existing, true
			return s.ledger.Record(ctx, historydomain.EntityItem, existing.ID, historydomain.ActionRestored, itemPayload(in))
		}

		saved = &list.Item{ID: s.newID(), CreatedAt: now, UpdatedAt: now}
		applyInput(saved, in, normalized)
		if err := s.items.Create(ctx, saved); err != nil {
			if errors.IsDuplicateError(err) {
				return list.ErrDuplicateItem()
			}
			return err
		}
		return s.ledger.Record(ctx, historydomain.EntityItem, saved.ID, historydomain.ActionCreated, itemPayload(in))
	})
	if err != nil {
		return nil, false, err
	}
	return s.toDTO(saved, s.clock.Now()), restored, nil
}

func (s *ItemService) Update(ctx context.Context, itemID string, in list.ItemInput) (*dto.ItemDTO, error) {
	in = withDefaults(in)
	normalized := list.NormalizeName(in.Name)

	var item *list.Item
	err := s.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		if item, err = s.activeItem(ctx, itemID); err != nil {
			return err
		}
		if err := s.ensureActiveSection(ctx, in.SectionID); err != nil {
			return err
		}

		dup, err := s.items.FindByNormalizedName(ctx, in.SectionID, normalized)
		if err != nil {
			return err
		}
		if dup != nil && dup.DeletedAt == nil && dup.ID != itemID {
			return list.ErrDuplicateItem()
		}

		applyInput(item, in, normalized)
		item.UpdatedAt = s.clock.Now()
		if err := s.items.Update(ctx, item); err != nil {
			if errors.IsDuplicateError(err) {
				return list.ErrDuplicateItem()
			}
			return err
		}
		return s.ledger.Record(ctx, historydomain.EntityItem, itemID, historydomain.ActionUpdated, itemPayload(in))
	})
	if err != nil {
		return nil, err
	}
	return s.toDTO(item, s.clock.Now()), nil
}

func (s *ItemService) Delete(ctx context.Context, itemID string) error {
	return s.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		item, err := s.activeItem(ctx, itemID)
		if err != nil {
			return err
		}
		now := s.clock.Now()
		item.DeletedAt = &now
		item.UpdatedAt = now
		if err := s.items.Update(ctx, item); err != nil {
			return err
		}
		return s.ledger.Record(ctx, historydomain.EntityItem, itemID, historydomain.ActionDeleted, nil)
	})
}

// ToggleChecked flips the checked flag, or sets it when explicit is given.
// Checking stamps last_checked_at, which restarts the reminder interval.
func (s *ItemService) ToggleChecked(ctx context.Context, itemID string, explicit *bool) (*dto.ItemDTO, error) {
	return s.mutate(ctx, itemID, func(item *list.Item, now time.Time) string {
		next := !item.Checked
		if explicit != nil {
			next = *explicit
		}
		item.Checked = next
		if next {
			at := now
			item.LastCheckedAt = &at
			return historydomain.ActionChecked
		}
		return historydomain.ActionUnchecked
	})
}

func (s *ItemService) ToggleFavorite(ctx context.Context, itemID string) (*dto.ItemDTO, error) {
	return s.mutate(ctx, itemID, func(item *list.Item, _ time.Time) string {
		item.Favorite = !item.Favorite
		if item.Favorite {
			return historydomain.ActionFavorited
		}
		return historydomain.ActionUnfavorited
	})
}

func (s *ItemService) ToggleRunningLow(ctx context.Context, itemID string) (*dto.ItemDTO, error) {
	return s.mutate(ctx, itemID, func(item *list.Item, _ time.Time) string {
		item.RunningLow = !item.RunningLow
		if item.RunningLow {
			return historydomain.ActionRunningLowOn
		}
		return historydomain.ActionRunningLowOff
	})
}

// mutate applies change to an active item, saves it and records the action
// change returns.
func (s *ItemService) mutate(ctx context.Context, itemID string, change func(item *list.Item, now time.Time) string) (*dto.ItemDTO, error) {
	var item *list.Item
	err := s.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		if item, err = s.activeItem(ctx, itemID); err != nil {
			return err
		}
		now := s.clock.Now()
		action := change(item, now)
		item.UpdatedAt = now
		if err := s.items.Update(ctx, item); err != nil {
			return err
		}
		return s.ledger.Record(ctx, historydomain.EntityItem, itemID, action, nil)
	})
	if err != nil {
		return nil, err
	}
	return s.toDTO(item, s.clock.Now()), nil
}

func (s *ItemService) activeItem(ctx context.Context, itemID string) (*list.Item, error) {
	item, err := s.items.Get(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil || item.DeletedAt != nil {
		return nil, list.ErrItemNotFound()
	}
	return item, nil
}

func (s *ItemService) ensureActiveSection(ctx context.Context, sectionID string) error {
	section, err := s.sections.Get(ctx, sectionID)
	if err != nil {
		return err
	}
	if section == nil || section.IsDeleted() {
		return list.ErrInvalidSection()
	}
	return nil
}

func (s *ItemService) toDTO(item *list.Item, now time.Time) *dto.ItemDTO {
	html := ""
	if s.renderer != nil && item.Description != "" {
		rendered, err := s.renderer.ToHTML(item.Description)
		if err != nil {
			s.logger.Warnw("failed to render item description", "item_id", item.ID, "error", err)
		} else {
			html = rendered
		}
	}
	return dto.ToItemDTO(item, now, html)
}

func withDefaults(in list.ItemInput) list.ItemInput {
	if in.Priority == "" {
		in.Priority = list.PrioritySoon
	}
	return in
}

func applyInput(item *list.Item, in list.ItemInput, normalized string) {
	item.SectionID = in.SectionID
	item.Name = in.Name
	item.NormalizedName = normalized
	item.Description = in.Description
	item.Priority = in.Priority
	item.RemindEveryDays = in.RemindEveryDays
}

func itemPayload(in list.ItemInput) map[string]any {
	return map[string]any{
		"sectionId":       in.SectionID,
		"name":            in.Name,
		"description":     in.Description,
		"priority":        string(in.Priority),
		"remindEveryDays": in.RemindEveryDays,
	}
}
