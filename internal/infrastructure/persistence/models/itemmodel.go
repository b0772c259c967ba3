package models

import "time"

type ItemModel struct {
	ID              string     `gorm:"primarykey;size:36"`
	SectionID       string     `gorm:"size:36;not null;index"`
	Name            string     `gorm:"size:200;not null"`
	NormalizedName  string     `gorm:"size:200;not null;index"`
	Description     string     `gorm:"type:text;not null;default:''"`
	Priority        string     `gorm:"size:16;not null;default:soon"`
	RemindEveryDays int        `gorm:"not null;default:0"`
	Checked         bool       `gorm:"not null;default:false"`
	Favorite        bool       `gorm:"not null;default:false"`
	RunningLow      bool       `gorm:"not null;default:false"`
	LastCheckedAt   *time.Time
	CreatedAt       time.Time  `gorm:"not null"`
	UpdatedAt       time.Time  `gorm:"not null"`
	DeletedAt       *time.Time `gorm:"index"`
}

func (ItemModel) TableName() string {
	return "items"
}
