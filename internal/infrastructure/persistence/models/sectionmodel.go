package models

import "time"

type SectionModel struct {
	ID             string     `gorm:"primarykey;size:36"`
	Name           string     `gorm:"size:120;not null"`
	NormalizedName string     `gorm:"size:120;not null;index"`
	Icon           string     `gorm:"size:32;not null;default:''"`
	Color          string     `gorm:"size:16;not null;default:''"`
	CreatedAt      time.Time  `gorm:"not null"`
	UpdatedAt      time.Time  `gorm:"not null"`
	DeletedAt      *time.Time `gorm:"index"`
}

func (SectionModel) TableName() string {
	return "sections"
}
