package gorm

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RaceBackup is a point-in-time snapshot of a session's current driver
// result rows, serialized verbatim as JSON.
type RaceBackup struct {
	ID              string    `gorm:"column:id;primaryKey;type:uuid" json:"id"`
	SessionResultID string    `gorm:"column:session_result_id;type:uuid;not null;index" json:"session_result_id"`
	Snapshot        string    `gorm:"column:snapshot;type:text;not null" json:"-"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for GORM
func (RaceBackup) TableName() string {
	return "race_backups"
}

func (b *RaceBackup) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}
