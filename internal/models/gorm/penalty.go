package gorm

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Penalty is a stacking time penalty applied to one driver's session result
// by a steward.
type Penalty struct {
	ID                    string    `gorm:"column:id;primaryKey;type:uuid" json:"id"`
	DriverSessionResultID string    `gorm:"column:driver_session_result_id;type:uuid;not null;index" json:"driver_session_result_id"`
	Seconds               int       `gorm:"column:seconds;not null" json:"seconds"`
	Reason                string    `gorm:"column:reason;not null" json:"reason"`
	Editor                string    `gorm:"column:editor;not null" json:"editor"`
	CreatedAt             time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for GORM
func (Penalty) TableName() string {
	return "penalties"
}

func (p *Penalty) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
