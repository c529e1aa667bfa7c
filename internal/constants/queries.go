package constants

const (
	// Season standings source rows. Aggregation happens in Go so the same
	// logic runs against the sqlite test databases.
	GetSeasonRaceResults = `
	SELECT dsr.member_id,
	       dsr.position,
	       dsr.points,
	       dsr.result_status,
	       dsr.penalty_seconds,
	       dsr.warnings,
	       dsr.fastest_lap,
	       dsr.pole_position
	FROM driver_session_results dsr
	JOIN session_results sr ON sr.id = dsr.session_result_id
	JOIN races r ON r.id = sr.race_id
	WHERE r.season_id = $1
	  AND sr.session_type IN ('race', 'race2')
	  AND dsr.member_id IS NOT NULL
	`

	GetApiKeyByHash = `
	SELECT * FROM api_keys WHERE key_hash = $1 AND is_active = true
	`

	InsertApiKey = `
	INSERT INTO api_keys (id, name, key_hash, is_active)
	VALUES ($1, $2, $3, true)
	`

	TouchApiKey = `
	UPDATE api_keys SET last_used_at = now() WHERE id = $1
	`
)
