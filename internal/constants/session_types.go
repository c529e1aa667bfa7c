package constants

// SessionType identifies one discrete timed activity within a race weekend
type SessionType string

const (
	SessionPractice1         SessionType = "practice1"
	SessionPractice2         SessionType = "practice2"
	SessionPractice3         SessionType = "practice3"
	SessionQualifying1       SessionType = "qualifying1"
	SessionQualifying2       SessionType = "qualifying2"
	SessionQualifying3       SessionType = "qualifying3"
	SessionShortQualifying   SessionType = "short_qualifying"
	SessionOneShotQualifying SessionType = "one_shot_qualifying"
	SessionRace              SessionType = "race"
	SessionRace2             SessionType = "race2"
	SessionTimeTrial         SessionType = "time_trial"
)

var sessionTypeNames = map[SessionType]string{
	SessionPractice1:         "Practice 1",
	SessionPractice2:         "Practice 2",
	SessionPractice3:         "Practice 3",
	SessionQualifying1:       "Qualifying 1",
	SessionQualifying2:       "Qualifying 2",
	SessionQualifying3:       "Qualifying 3",
	SessionShortQualifying:   "Short Qualifying",
	SessionOneShotQualifying: "One-Shot Qualifying",
	SessionRace:              "Race",
	SessionRace2:             "Race 2",
	SessionTimeTrial:         "Time Trial",
}

// SessionTypeName returns the display name for a session type,
// falling back to the raw value for types the table does not know.
func SessionTypeName(t SessionType) string {
	if name, ok := sessionTypeNames[t]; ok {
		return name
	}
	return string(t)
}

// IsRaceSession reports whether a session type counts towards standings
func IsRaceSession(t SessionType) bool {
	return t == SessionRace || t == SessionRace2
}

// Result status values for a driver's session result
const (
	ResultStatusFinished      = "finished"
	ResultStatusDNF           = "dnf"
	ResultStatusDisqualified  = "dsq"
	ResultStatusNotClassified = "not_classified"
	ResultStatusRetired       = "retired"
)

// Race status lifecycle
const (
	RaceStatusScheduled = "scheduled"
	RaceStatusCompleted = "completed"
)

// Orphaned session dispositions
const (
	OrphanStatusPending   = "pending"
	OrphanStatusProcessed = "processed"
	OrphanStatusIgnored   = "ignored"
)

// Edit types recorded in the audit trail
const (
	EditTypePenalty          = "penalty"
	EditTypePositionChange   = "position_change"
	EditTypeDisqualification = "disqualification"
	EditTypeUserMapping      = "user_mapping"
)
