package dtos

import "time"

// ImportResponse reports where an imported session landed.
type ImportResponse struct {
	RaceID          string `json:"race_id"`
	SessionResultID string `json:"session_result_id"`
	ResolvedDrivers int    `json:"resolved_drivers"`
	TotalDrivers    int    `json:"total_drivers"`
}

// StandingsRow is one member's aggregate line in the season standings.
type StandingsRow struct {
	MemberID      string `json:"member_id"`
	Races         int    `json:"races"`
	TotalPoints   int    `json:"total_points"`
	Wins          int    `json:"wins"`
	Podiums       int    `json:"podiums"`
	FastestLaps   int    `json:"fastest_laps"`
	PolePositions int    `json:"pole_positions"`
	BestFinish    int    `json:"best_finish"`
	PenaltySecs   int    `json:"penalty_seconds"`
	Warnings      int    `json:"warnings"`
}

// BackupResponse identifies a created backup.
type BackupResponse struct {
	BackupID  string    `json:"backup_id"`
	CreatedAt time.Time `json:"created_at"`
}

// SessionCompletedEvent is pushed to subscribers after a successful import.
type SessionCompletedEvent struct {
	RaceID          string                `json:"race_id"`
	SessionResultID string                `json:"session_result_id"`
	SessionType     string                `json:"session_type"`
	SessionName     string                `json:"session_name"`
	Results         []DriverResultPayload `json:"results"`
}

// OrphanedSessionEvent is pushed to subscribers when a payload cannot be
// matched to any race and is parked for admin review.
type OrphanedSessionEvent struct {
	OrphanID    string    `json:"orphan_id"`
	TrackName   string    `json:"track_name"`
	SessionType string    `json:"session_type"`
	SessionName string    `json:"session_name"`
	Timestamp   time.Time `json:"timestamp"`
}

// ReResolveResponse reports the outcome of a re-resolution pass.
type ReResolveResponse struct {
	Scanned  int `json:"scanned"`
	Resolved int `json:"resolved"`
}
