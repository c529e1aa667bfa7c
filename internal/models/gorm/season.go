package gorm

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Season is a scoring period. At most one season is active at a time.
type Season struct {
	ID        string     `gorm:"column:id;primaryKey;type:uuid" json:"id"`
	Name      string     `gorm:"column:name;not null" json:"name"`
	Year      int        `gorm:"column:year;not null" json:"year"`
	StartDate *time.Time `gorm:"column:start_date" json:"start_date,omitempty"`
	EndDate   *time.Time `gorm:"column:end_date" json:"end_date,omitempty"`
	IsActive  bool       `gorm:"column:is_active;default:false" json:"is_active"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	// Relationships
	Races []Race `gorm:"foreignKey:SeasonID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for GORM
func (Season) TableName() string {
	return "seasons"
}

func (s *Season) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
