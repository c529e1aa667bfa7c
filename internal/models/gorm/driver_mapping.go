package gorm

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DriverMapping binds one simulator identity to a league member for one
// season. A member may carry different mappings across seasons; at most one
// active mapping exists per simulator identity per season.
type DriverMapping struct {
	ID       string `gorm:"column:id;primaryKey;type:uuid" json:"id"`
	SeasonID string `gorm:"column:season_id;type:uuid;not null;index" json:"season_id"`
	MemberID string `gorm:"column:member_id;type:uuid;not null;index" json:"member_id"`

	DriverName string  `gorm:"column:driver_name;not null" json:"driver_name"`
	CarNumber  *int    `gorm:"column:car_number" json:"car_number,omitempty"`
	TeamName   *string `gorm:"column:team_name" json:"team_name,omitempty"`
	NetworkID  *string `gorm:"column:network_id" json:"network_id,omitempty"`
	SteamID    *string `gorm:"column:steam_id" json:"steam_id,omitempty"`

	IsActive  bool       `gorm:"column:is_active;default:true" json:"is_active"`
	ValidFrom time.Time  `gorm:"column:valid_from;autoCreateTime" json:"valid_from"`
	ValidTo   *time.Time `gorm:"column:valid_to" json:"valid_to,omitempty"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	// Relationships
	Member Member `gorm:"foreignKey:MemberID" json:"-"`
}

// TableName specifies the table name for GORM
func (DriverMapping) TableName() string {
	return "driver_mappings"
}

func (m *DriverMapping) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
