package dtos

// SessionInfo describes the session a payload belongs to, as reported by the
// telemetry or file-import collaborator.
type SessionInfo struct {
	TrackName       string  `json:"track_name"`
	SessionType     string  `json:"session_type"`
	SessionTypeName string  `json:"session_type_name,omitempty"`
	SessionUID      *string `json:"session_uid,omitempty"`
}

// DriverResultPayload is one driver's finishing data from the simulator.
// Times are integer milliseconds.
type DriverResultPayload struct {
	Position        int     `json:"position"`
	GridPosition    int     `json:"grid_position"`
	Points          int     `json:"points"`
	NumLaps         int     `json:"num_laps"`
	BestLapTimeMs   int64   `json:"best_lap_time_ms"`
	Sector1TimeMs   int64   `json:"sector1_time_ms"`
	Sector2TimeMs   int64   `json:"sector2_time_ms"`
	Sector3TimeMs   int64   `json:"sector3_time_ms"`
	TotalRaceTimeMs int64   `json:"total_race_time_ms"`
	PenaltySeconds  int     `json:"penalties"`
	Warnings        int     `json:"warnings"`
	ResultStatus    string  `json:"result_status"`
	DNFReason       *string `json:"dnf_reason,omitempty"`
	FastestLap      bool    `json:"fastest_lap"`
	PolePosition    bool    `json:"pole_position"`

	DriverName string  `json:"driver_name"`
	CarNumber  int     `json:"car_number"`
	TeamName   string  `json:"team_name"`
	NetworkID  *string `json:"network_id,omitempty"`
	SteamID    *string `json:"steam_id,omitempty"`
}

// SessionPayload is one complete parsed session delivered by a collaborator.
type SessionPayload struct {
	SessionInfo   SessionInfo           `json:"session_info"`
	DriverResults []DriverResultPayload `json:"driver_results"`
}

// ImportRequest is the HTTP body for a session import. RaceID is optional;
// callers that already know the race supply it instead of re-resolving.
type ImportRequest struct {
	SessionPayload
	RaceID *string `json:"race_id,omitempty"`
}

// PenaltyRequest adds a stacking time penalty to a driver result.
type PenaltyRequest struct {
	Seconds int    `json:"seconds"`
	Reason  string `json:"reason"`
}

// PositionRequest moves a driver to a new classified position.
type PositionRequest struct {
	DriverResultID string `json:"driver_result_id"`
	NewPosition    int    `json:"new_position"`
	Reason         string `json:"reason"`
}

// ValidateEditRequest pre-checks that an edit's targets exist.
type ValidateEditRequest struct {
	DriverResultID string `json:"driver_result_id"`
}

// DisqualifyRequest disqualifies a driver from a session. Reason is mandatory.
type DisqualifyRequest struct {
	DriverResultID string `json:"driver_result_id"`
	Reason         string `json:"reason"`
}

// MappingEditRequest reassigns which member a driver entry resolves to.
// A nil MemberID clears the resolution.
type MappingEditRequest struct {
	DriverResultID string  `json:"driver_result_id"`
	MemberID       *string `json:"member_id"`
	Reason         string  `json:"reason,omitempty"`
}

// SeasonCreateRequest creates a new season.
type SeasonCreateRequest struct {
	Name string `json:"name"`
	Year int    `json:"year"`
}

// MappingCreateRequest registers a simulator identity for a member.
type MappingCreateRequest struct {
	MemberID   string  `json:"member_id"`
	DriverName string  `json:"driver_name"`
	CarNumber  *int    `json:"car_number,omitempty"`
	TeamName   *string `json:"team_name,omitempty"`
	NetworkID  *string `json:"network_id,omitempty"`
	SteamID    *string `json:"steam_id,omitempty"`
}

// OrphanProcessRequest links an orphaned session to a race.
type OrphanProcessRequest struct {
	RaceID string `json:"race_id"`
}
