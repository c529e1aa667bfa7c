package gorm

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Race groups all sessions held at one track visit within a season.
type Race struct {
	ID        string    `gorm:"column:id;primaryKey;type:uuid" json:"id"`
	SeasonID  string    `gorm:"column:season_id;type:uuid;not null;index" json:"season_id"`
	TrackID   string    `gorm:"column:track_id;type:uuid;not null" json:"track_id"`
	RaceDate  time.Time `gorm:"column:race_date;not null" json:"race_date"`
	Status    string    `gorm:"column:status;not null;default:scheduled" json:"status"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	// Relationships
	Season Season `gorm:"foreignKey:SeasonID" json:"-"`
	Track  Track  `gorm:"foreignKey:TrackID" json:"-"`
}

// TableName specifies the table name for GORM
func (Race) TableName() string {
	return "races"
}

func (r *Race) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
