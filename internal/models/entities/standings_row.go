package entities

// RaceResultRow is one driver's row from a race-type session, as read by the
// standings aggregation query. Only resolved rows are selected.
type RaceResultRow struct {
	MemberID       string `db:"member_id"`
	Position       int    `db:"position"`
	Points         int    `db:"points"`
	ResultStatus   string `db:"result_status"`
	PenaltySeconds int    `db:"penalty_seconds"`
	Warnings       int    `db:"warnings"`
	FastestLap     bool   `db:"fastest_lap"`
	PolePosition   bool   `db:"pole_position"`
}
