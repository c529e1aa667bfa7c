package gorm

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DriverSessionResult is the current, editable result of one driver entry in
// a session. The raw identity fields reported by the simulator are kept even
// after resolution so an unresolved entry can be re-resolved once a mapping
// exists. All times are integer milliseconds.
type DriverSessionResult struct {
	ID              string  `gorm:"column:id;primaryKey;type:uuid" json:"id"`
	SessionResultID string  `gorm:"column:session_result_id;type:uuid;not null;index" json:"session_result_id"`
	MemberID        *string `gorm:"column:member_id;type:uuid;index" json:"member_id,omitempty"`

	Position        int    `gorm:"column:position;not null" json:"position"`
	GridPosition    int    `gorm:"column:grid_position" json:"grid_position"`
	Points          int    `gorm:"column:points" json:"points"`
	NumLaps         int    `gorm:"column:num_laps" json:"num_laps"`
	BestLapTimeMs   int64  `gorm:"column:best_lap_time_ms" json:"best_lap_time_ms"`
	Sector1TimeMs   int64  `gorm:"column:sector1_time_ms" json:"sector1_time_ms"`
	Sector2TimeMs   int64  `gorm:"column:sector2_time_ms" json:"sector2_time_ms"`
	Sector3TimeMs   int64  `gorm:"column:sector3_time_ms" json:"sector3_time_ms"`
	TotalRaceTimeMs int64  `gorm:"column:total_race_time_ms" json:"total_race_time_ms"`
	PenaltySeconds  int    `gorm:"column:penalty_seconds" json:"penalty_seconds"`
	Warnings        int    `gorm:"column:warnings" json:"warnings"`
	ResultStatus    string `gorm:"column:result_status;not null" json:"result_status"`
	DNFReason       *string `gorm:"column:dnf_reason" json:"dnf_reason,omitempty"`
	FastestLap      bool   `gorm:"column:fastest_lap" json:"fastest_lap"`
	PolePosition    bool   `gorm:"column:pole_position" json:"pole_position"`

	// Raw simulator identity, preserved for audit and re-resolution
	DriverName string  `gorm:"column:driver_name" json:"driver_name"`
	CarNumber  int     `gorm:"column:car_number" json:"car_number"`
	TeamName   string  `gorm:"column:team_name" json:"team_name"`
	NetworkID  *string `gorm:"column:network_id" json:"network_id,omitempty"`
	SteamID    *string `gorm:"column:steam_id" json:"steam_id,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	// Relationships
	Penalties []Penalty `gorm:"foreignKey:DriverSessionResultID;constraint:OnDelete:CASCADE" json:"penalties,omitempty"`
}

// TableName specifies the table name for GORM
func (DriverSessionResult) TableName() string {
	return "driver_session_results"
}

func (d *DriverSessionResult) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return nil
}
