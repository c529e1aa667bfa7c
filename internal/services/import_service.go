package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"apexleague/paddock/internal/constants"
	"apexleague/paddock/internal/logging"
	"apexleague/paddock/internal/models/dtos"
	gormModels "apexleague/paddock/internal/models/gorm"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Notifier pushes engine events to subscribers.
type Notifier interface {
	SessionCompleted(ctx context.Context, evt dtos.SessionCompletedEvent) error
	SessionOrphaned(ctx context.Context, evt dtos.OrphanedSessionEvent) error
}

// StandingsRecalculator recomputes season standings after an import.
// Recalculation is read-only and derivable on demand, so import treats
// failures here as log-and-continue.
type StandingsRecalculator interface {
	Recalculate(ctx context.Context, seasonID string) error
}

// ImportService orchestrates one atomic session import: resolve the race,
// resolve driver identities, snapshot originals, persist current rows, mark
// the race complete, recompute standings and notify subscribers. Steps 1-5
// share one transaction; no SessionResult ever exists without its rows.
type ImportService struct {
	db        *gorm.DB
	resolver  *IdentityResolver
	events    *EventResolver
	orphans   *OrphanService
	standings StandingsRecalculator
	notifier  Notifier
}

func NewImportService(
	db *gorm.DB,
	resolver *IdentityResolver,
	events *EventResolver,
	orphans *OrphanService,
	standings StandingsRecalculator,
	notifier Notifier,
) *ImportService {
	return &ImportService{
		db:        db,
		resolver:  resolver,
		events:    events,
		orphans:   orphans,
		standings: standings,
		notifier:  notifier,
	}
}

// ImportSession imports one parsed session payload. Callers that already
// know the race pass its id and skip event resolution; repeated calls with
// the same payload and no race id create new result sets, so callers must
// deduplicate by session UID up front. A payload whose track cannot be
// matched or created is parked with the orphan handler and the resolution
// failure is returned.
func (s *ImportService) ImportSession(ctx context.Context, payload dtos.SessionPayload, optionalRaceID *string) (*dtos.ImportResponse, error) {
	sessionType := constants.SessionType(payload.SessionInfo.SessionType)

	var (
		race        gormModels.Race
		sessionRow  gormModels.SessionResult
		resolutions []Resolution
	)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// STEP 1: RESOLVE OR CREATE THE RACE
		if optionalRaceID != nil {
			if err := tx.First(&race, "id = ?", *optionalRaceID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return &NotFoundError{Resource: "race", ID: *optionalRaceID}
				}
				return err
			}
		} else {
			seasonID, err := s.activeSeasonID(tx)
			if err != nil {
				return err
			}
			resolved, err := s.events.ResolveRace(tx, payload.SessionInfo.TrackName, seasonID)
			if err != nil {
				return err
			}
			race = *resolved
		}

		// Reject a duplicate upload of the same simulator session.
		if payload.SessionInfo.SessionUID != nil && *payload.SessionInfo.SessionUID != "" {
			var existing gormModels.SessionResult
			err := tx.Where("race_id = ? AND session_uid = ?", race.ID, *payload.SessionInfo.SessionUID).
				First(&existing).Error
			if err == nil {
				return &ConflictError{
					Msg:        fmt.Sprintf("session uid %s already imported", *payload.SessionInfo.SessionUID),
					ConflictID: existing.ID,
				}
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
		}

		// STEP 2: RESOLVE DRIVER IDENTITIES
		ids := make([]RawIdentity, len(payload.DriverResults))
		for i, dr := range payload.DriverResults {
			ids[i] = RawIdentity{
				DriverName: dr.DriverName,
				TeamName:   dr.TeamName,
				CarNumber:  dr.CarNumber,
				NetworkID:  dr.NetworkID,
				SteamID:    dr.SteamID,
			}
		}
		var err error
		resolutions, err = s.resolver.ResolveSession(ctx, race.SeasonID, ids)
		if err != nil {
			return err
		}

		// STEP 3: CREATE THE SESSION RESULT
		sessionRow = gormModels.SessionResult{
			RaceID:          race.ID,
			SessionType:     string(sessionType),
			SessionTypeName: sessionTypeName(payload.SessionInfo),
			SessionUID:      payload.SessionInfo.SessionUID,
		}
		if err := tx.Create(&sessionRow).Error; err != nil {
			return err
		}

		// Current row ids are fixed up front so the snapshot can reference
		// them while still being written first.
		rowIDs := make([]string, len(payload.DriverResults))
		for i := range rowIDs {
			rowIDs[i] = uuid.NewString()
		}

		// STEP 4: PERSIST THE IMMUTABLE ORIGINAL SNAPSHOT
		// Written before the current rows so "reset to original" always has
		// ground truth, whatever happens later in the import.
		for i, dr := range payload.DriverResults {
			snapshot := originalFromPayload(sessionRow.ID, rowIDs[i], dr, resolutions[i])
			if err := tx.Create(&snapshot).Error; err != nil {
				return err
			}
		}

		// STEP 5: PERSIST THE CURRENT DRIVER ROWS
		for i, dr := range payload.DriverResults {
			row := driverRowFromPayload(sessionRow.ID, rowIDs[i], dr, resolutions[i])
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}

		// STEP 6: A RACE SESSION COMPLETES THE RACE
		if constants.IsRaceSession(sessionType) {
			if err := tx.Model(&gormModels.Race{}).
				Where("id = ?", race.ID).
				Update("status", constants.RaceStatusCompleted).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, ErrResolutionFailed) {
			return nil, s.parkOrphan(ctx, payload)
		}
		s.logImportFailure(payload, err)
		return nil, err
	}

	// STEP 7: RECALCULATE STANDINGS (best effort; results are already durable)
	if constants.IsRaceSession(sessionType) {
		if err := s.standings.Recalculate(ctx, race.SeasonID); err != nil {
			logging.Warn("Standings recalculation failed after import",
				"season_id", race.SeasonID,
				"session_result_id", sessionRow.ID,
				"error", err.Error(),
			)
		}
	}

	// STEP 8: NOTIFY SUBSCRIBERS
	evt := dtos.SessionCompletedEvent{
		RaceID:          race.ID,
		SessionResultID: sessionRow.ID,
		SessionType:     sessionRow.SessionType,
		SessionName:     sessionRow.SessionTypeName,
		Results:         payload.DriverResults,
	}
	if err := s.notifier.SessionCompleted(ctx, evt); err != nil {
		logging.Warn("Session completed notification failed",
			"session_result_id", sessionRow.ID,
			"error", err.Error(),
		)
	}

	resolved := 0
	for _, r := range resolutions {
		if r.MemberID != nil {
			resolved++
		}
	}
	log.Printf("[ImportService] Imported session %s (%s) under race %s: %d/%d drivers resolved",
		sessionRow.ID, sessionRow.SessionType, race.ID, resolved, len(payload.DriverResults))

	return &dtos.ImportResponse{
		RaceID:          race.ID,
		SessionResultID: sessionRow.ID,
		ResolvedDrivers: resolved,
		TotalDrivers:    len(payload.DriverResults),
	}, nil
}

// parkOrphan persists an unmatchable payload for admin disposition. The
// import transaction has already rolled back; the orphan row must survive,
// so it is written outside of it.
func (s *ImportService) parkOrphan(ctx context.Context, payload dtos.SessionPayload) error {
	if _, err := s.orphans.HandleOrphanedSession(ctx, payload); err != nil {
		logging.Error("Failed to persist orphaned session",
			"track_name", payload.SessionInfo.TrackName,
			"error", err.Error(),
		)
		return err
	}
	return ErrResolutionFailed
}

func (s *ImportService) activeSeasonID(tx *gorm.DB) (*string, error) {
	var season gormModels.Season
	err := tx.Where("is_active = ?", true).First(&season).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &season.ID, nil
}

func (s *ImportService) logImportFailure(payload dtos.SessionPayload, err error) {
	raw, _ := json.Marshal(payload)
	logging.Error("Session import failed",
		"track_name", payload.SessionInfo.TrackName,
		"session_type", payload.SessionInfo.SessionType,
		"payload", string(raw),
		"error", err.Error(),
	)
}

func sessionTypeName(info dtos.SessionInfo) string {
	if info.SessionTypeName != "" {
		return info.SessionTypeName
	}
	return constants.SessionTypeName(constants.SessionType(info.SessionType))
}

func driverRowFromPayload(sessionResultID, rowID string, dr dtos.DriverResultPayload, res Resolution) gormModels.DriverSessionResult {
	return gormModels.DriverSessionResult{
		ID:              rowID,
		SessionResultID: sessionResultID,
		MemberID:        res.MemberID,
		Position:        dr.Position,
		GridPosition:    dr.GridPosition,
		Points:          dr.Points,
		NumLaps:         dr.NumLaps,
		BestLapTimeMs:   dr.BestLapTimeMs,
		Sector1TimeMs:   dr.Sector1TimeMs,
		Sector2TimeMs:   dr.Sector2TimeMs,
		Sector3TimeMs:   dr.Sector3TimeMs,
		TotalRaceTimeMs: dr.TotalRaceTimeMs,
		PenaltySeconds:  dr.PenaltySeconds,
		Warnings:        dr.Warnings,
		ResultStatus:    dr.ResultStatus,
		DNFReason:       dr.DNFReason,
		FastestLap:      dr.FastestLap,
		PolePosition:    dr.PolePosition,
		DriverName:      dr.DriverName,
		CarNumber:       dr.CarNumber,
		TeamName:        dr.TeamName,
		NetworkID:       dr.NetworkID,
		SteamID:         dr.SteamID,
	}
}

func originalFromPayload(sessionResultID, rowID string, dr dtos.DriverResultPayload, res Resolution) gormModels.OriginalSessionResult {
	return gormModels.OriginalSessionResult{
		SessionResultID: sessionResultID,
		DriverResultID:  rowID,
		MemberID:        res.MemberID,
		Position:        dr.Position,
		GridPosition:    dr.GridPosition,
		Points:          dr.Points,
		NumLaps:         dr.NumLaps,
		BestLapTimeMs:   dr.BestLapTimeMs,
		Sector1TimeMs:   dr.Sector1TimeMs,
		Sector2TimeMs:   dr.Sector2TimeMs,
		Sector3TimeMs:   dr.Sector3TimeMs,
		TotalRaceTimeMs: dr.TotalRaceTimeMs,
		PenaltySeconds:  dr.PenaltySeconds,
		Warnings:        dr.Warnings,
		ResultStatus:    dr.ResultStatus,
		DNFReason:       dr.DNFReason,
		FastestLap:      dr.FastestLap,
		PolePosition:    dr.PolePosition,
		DriverName:      dr.DriverName,
		CarNumber:       dr.CarNumber,
		TeamName:        dr.TeamName,
		NetworkID:       dr.NetworkID,
		SteamID:         dr.SteamID,
	}
}
