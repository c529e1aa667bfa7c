package gorm

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OriginalSessionResult is the immutable snapshot of a driver's result taken
// at import time, before any manual edit. It is written once by the importer
// and never mutated; "reset to original" reads from here. It is deliberately
// a separate table from driver_session_results rather than a flag on the
// current row, so no edit path can touch it.
type OriginalSessionResult struct {
	ID              string `gorm:"column:id;primaryKey;type:uuid" json:"id"`
	SessionResultID string `gorm:"column:session_result_id;type:uuid;not null;index" json:"session_result_id"`
	// DriverResultID links the snapshot to the current row it was taken from.
	DriverResultID string  `gorm:"column:driver_result_id;type:uuid;not null;uniqueIndex" json:"driver_result_id"`
	MemberID       *string `gorm:"column:member_id;type:uuid" json:"member_id,omitempty"`

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

	DriverName string  `gorm:"column:driver_name" json:"driver_name"`
	CarNumber  int     `gorm:"column:car_number" json:"car_number"`
	TeamName   string  `gorm:"column:team_name" json:"team_name"`
	NetworkID  *string `gorm:"column:network_id" json:"network_id,omitempty"`
	SteamID    *string `gorm:"column:steam_id" json:"steam_id,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for GORM
func (OriginalSessionResult) TableName() string {
	return "original_session_results"
}

func (o *OriginalSessionResult) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}
