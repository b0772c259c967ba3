package models

import "time"

// AuthFailureModel is one row of failed PIN attempts per client.
type AuthFailureModel struct {
	ClientID      string     `gorm:"primarykey;size:128"`
	FailureCount  int        `gorm:"not null;default:0"`
	FirstFailedAt time.Time  `gorm:"not null"`
	LastFailedAt  time.Time  `gorm:"not null"`
	BlockedUntil  *time.Time `gorm:"index"`
}

func (AuthFailureModel) TableName() string {
	return "auth_failures"
}
