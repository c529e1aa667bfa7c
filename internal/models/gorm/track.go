package gorm

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Track is a circuit from the league catalog. Rows are created on first
// reference by (normalized) name and reused thereafter.
type Track struct {
	ID           string    `gorm:"column:id;primaryKey;type:uuid" json:"id"`
	Name         string    `gorm:"column:name;uniqueIndex;not null" json:"name"`
	Country      string    `gorm:"column:country" json:"country"`
	LengthMeters *int      `gorm:"column:length_meters" json:"length_meters,omitempty"`
	Corners      *int      `gorm:"column:corners" json:"corners,omitempty"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for GORM
func (Track) TableName() string {
	return "tracks"
}

func (t *Track) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}
