package gorm

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Member is a persistent league participant, distinct from any in-simulator
// identity they race under.
type Member struct {
	ID          string    `gorm:"column:id;primaryKey;type:uuid" json:"id"`
	DisplayName string    `gorm:"column:display_name;not null" json:"display_name"`
	Nationality string    `gorm:"column:nationality" json:"nationality"`
	IsActive    bool      `gorm:"column:is_active;default:true" json:"is_active"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for GORM
func (Member) TableName() string {
	return "members"
}

func (m *Member) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
