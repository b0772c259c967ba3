// Package dto holds the JSON views of sections and items.
package dto

import (
	"time"

	"hungrylist/internal/domain/list"
)

type SectionDTO struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Icon      string     `json:"icon"`
	Color     string     `json:"color"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	DeletedAt *time.Time `json:"deletedAt"`
}

type ItemDTO struct {
	ID              string     `json:"id"`
	SectionID       string     `json:"sectionId"`
	Name            string     `json:"name"`
	Description     string     `json:"description"`
	DescriptionHTML string     `json:"descriptionHtml"`
	Priority        string     `json:"priority"`
	RemindEveryDays int        `json:"remindEveryDays"`
	Checked         bool       `json:"checked"`
	Favorite        bool       `json:"favorite"`
	RunningLow      bool       `json:"runningLow"`
	LastCheckedAt   *time.Time `json:"lastCheckedAt"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
	DeletedAt       *time.Time `json:"deletedAt"`
	ReminderDue     bool       `json:"reminderDue"`
}

func ToSectionDTO(s *list.Section) *SectionDTO {
	return &SectionDTO{
		ID:        s.ID,
		Name:      s.Name,
		Icon:      s.Icon,
		Color:     s.Color,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
		DeletedAt: s.DeletedAt,
	}
}

func ToSectionDTOs(sections []*list.Section) []*SectionDTO {
	out := make([]*SectionDTO, len(sections))
	for i, s := range sections {
		out[i] = ToSectionDTO(s)
	}
	return out
}

// ToItemDTO evaluates reminder due-ness at now. descriptionHTML is the
// already sanitized rendering of the description.
func ToItemDTO(item *list.Item, now time.Time, descriptionHTML string) *ItemDTO {
	return &ItemDTO{
		ID:              item.ID,
		SectionID:       item.SectionID,
		Name:            item.Name,
		Description:     item.Description,
		DescriptionHTML: descriptionHTML,
		Priority:        string(item.Priority),
		RemindEveryDays: item.RemindEveryDays,
		Checked:         item.Checked,
		Favorite:        item.Favorite,
		RunningLow:      item.RunningLow,
		LastCheckedAt:   item.LastCheckedAt,
		CreatedAt:       item.CreatedAt,
		UpdatedAt:       item.UpdatedAt,
		DeletedAt:       item.DeletedAt,
		ReminderDue:     item.ReminderDue(now),
	}
}
