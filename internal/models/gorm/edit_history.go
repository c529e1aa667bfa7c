package gorm

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RaceEditHistory is the append-only audit trail of manual corrections.
// Rows are never updated or deleted; a revert is a new forward entry whose
// new value equals the reverted entry's old value. Old/new values are stored
// as JSON documents keyed by edit type.
type RaceEditHistory struct {
	ID              string  `gorm:"column:id;primaryKey;type:uuid" json:"id"`
	SessionResultID string  `gorm:"column:session_result_id;type:uuid;not null;index" json:"session_result_id"`
	DriverResultID  *string `gorm:"column:driver_result_id;type:uuid" json:"driver_result_id,omitempty"`
	MemberID        *string `gorm:"column:member_id;type:uuid" json:"member_id,omitempty"`
	EditType        string  `gorm:"column:edit_type;not null" json:"edit_type"`
	OldValue        string  `gorm:"column:old_value;type:text" json:"old_value"`
	NewValue        string  `gorm:"column:new_value;type:text" json:"new_value"`
	Reason          string  `gorm:"column:reason" json:"reason"`
	Editor          string  `gorm:"column:editor;not null" json:"editor"`
	// RevertOf points at the history entry this entry reverses, if any.
	RevertOf  *string   `gorm:"column:revert_of;type:uuid" json:"revert_of,omitempty"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for GORM
func (RaceEditHistory) TableName() string {
	return "race_edit_history"
}

func (h *RaceEditHistory) BeforeCreate(tx *gorm.DB) error {
	if h.ID == "" {
		h.ID = uuid.NewString()
	}
	return nil
}
