package models

import "time"

// BackupModel is the metadata row of one artifact on disk.
type BackupModel struct {
	ID        string    `gorm:"primarykey;size:32"`
	Filename  string    `gorm:"size:64;not null;uniqueIndex"`
	Reason    string    `gorm:"size:20;not null"`
	CreatedAt time.Time `gorm:"not null;index"`
}

func (BackupModel) TableName() string {
	return "backups"
}
