package models

import "time"

// SessionModel represents the database persistence model for sessions.
type SessionModel struct {
	ID        string     `gorm:"primarykey;size:64"`
	TokenHash string     `gorm:"size:64;not null;uniqueIndex"`
	Trusted   bool       `gorm:"not null;default:false"`
	IPAddress string     `gorm:"size:64"`
	UserAgent string     `gorm:"size:512"`
	CreatedAt time.Time  `gorm:"not null"`
	ExpiresAt time.Time  `gorm:"not null;index"`
	RevokedAt *time.Time `gorm:"index"`
}

// TableName specifies the table name for GORM
func (SessionModel) TableName() string {
	return "sessions"
}
