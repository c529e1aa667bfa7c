package gorm

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SessionResult is one completed session's result set under a race.
// SessionUID is the simulator's own session identifier, kept for
// deduplication of repeated uploads.
type SessionResult struct {
	ID              string    `gorm:"column:id;primaryKey;type:uuid" json:"id"`
	RaceID          string    `gorm:"column:race_id;type:uuid;not null;index" json:"race_id"`
	SessionType     string    `gorm:"column:session_type;not null" json:"session_type"`
	SessionTypeName string    `gorm:"column:session_type_name" json:"session_type_name"`
	SessionUID      *string   `gorm:"column:session_uid;index" json:"session_uid,omitempty"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`

	// Relationships
	Race Race `gorm:"foreignKey:RaceID" json:"-"`
}

// TableName specifies the table name for GORM
func (SessionResult) TableName() string {
	return "session_results"
}

func (s *SessionResult) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
