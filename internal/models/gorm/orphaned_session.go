package gorm

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrphanedSession holds a session payload that could not be matched to any
// existing or creatable race. The raw payload is kept verbatim so an admin
// can link it to an event later; no orphan is ever silently dropped.
type OrphanedSession struct {
	ID              string     `gorm:"column:id;primaryKey;type:uuid" json:"id"`
	TrackName       string     `gorm:"column:track_name;not null" json:"track_name"`
	SessionType     string     `gorm:"column:session_type" json:"session_type"`
	SessionTypeName string     `gorm:"column:session_type_name" json:"session_type_name"`
	Payload         string     `gorm:"column:payload;type:text;not null" json:"-"`
	Status          string     `gorm:"column:status;not null;default:pending" json:"status"`
	RaceID          *string    `gorm:"column:race_id;type:uuid" json:"race_id,omitempty"`
	CapturedAt      time.Time  `gorm:"column:captured_at;autoCreateTime" json:"captured_at"`
	ProcessedAt     *time.Time `gorm:"column:processed_at" json:"processed_at,omitempty"`
}

// TableName specifies the table name for GORM
func (OrphanedSession) TableName() string {
	return "orphaned_sessions"
}

func (o *OrphanedSession) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}
