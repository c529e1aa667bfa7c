package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	gormModels "apexleague/paddock/internal/models/gorm"

	"gorm.io/gorm"
)

// BackupService snapshots a session's current driver rows and can replace
// them with any prior snapshot, or with the immutable import-time original.
// Restores are full replaces, not merges: edits made after the snapshot are
// discarded.
type BackupService struct {
	db *gorm.DB
}

func NewBackupService(db *gorm.DB) *BackupService {
	return &BackupService{db: db}
}

// CreateBackup serializes the session's current driver rows verbatim.
func (s *BackupService) CreateBackup(ctx context.Context, sessionResultID string) (*gormModels.RaceBackup, error) {
	var session gormModels.SessionResult
	err := s.db.WithContext(ctx).First(&session, "id = ?", sessionResultID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "session result", ID: sessionResultID}
		}
		return nil, err
	}

	var rows []gormModels.DriverSessionResult
	if err := s.db.WithContext(ctx).
		Where("session_result_id = ?", sessionResultID).
		Order("position ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	data, err := json.Marshal(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize backup: %w", err)
	}

	backup := gormModels.RaceBackup{
		SessionResultID: sessionResultID,
		Snapshot:        string(data),
	}
	if err := s.db.WithContext(ctx).Create(&backup).Error; err != nil {
		return nil, err
	}
	log.Printf("[BackupService] Created backup %s for session %s (%d rows)", backup.ID, sessionResultID, len(rows))
	return &backup, nil
}

// RestoreFromBackup deletes the session's current driver rows and
// re-inserts the snapshot rows under their original ids, so penalties keep
// pointing at the right entries.
func (s *BackupService) RestoreFromBackup(ctx context.Context, backupID string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var backup gormModels.RaceBackup
		err := tx.First(&backup, "id = ?", backupID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Resource: "backup", ID: backupID}
			}
			return err
		}

		var rows []gormModels.DriverSessionResult
		if err := json.Unmarshal([]byte(backup.Snapshot), &rows); err != nil {
			return fmt.Errorf("corrupt backup snapshot %s: %w", backupID, err)
		}

		if err := tx.Where("session_result_id = ?", backup.SessionResultID).
			Delete(&gormModels.DriverSessionResult{}).Error; err != nil {
			return err
		}
		for i := range rows {
			if err := tx.Create(&rows[i]).Error; err != nil {
				return err
			}
		}
		log.Printf("[BackupService] Restored session %s from backup %s (%d rows)",
			backup.SessionResultID, backupID, len(rows))
		return nil
	})
}

// ResetDriverToOriginal restores one driver's row to the import-time
// snapshot and drops the manual penalties stacked on it.
func (s *BackupService) ResetDriverToOriginal(ctx context.Context, sessionResultID, driverResultID string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := loadSessionDriverResult(tx, sessionResultID, driverResultID); err != nil {
			return err
		}

		var original gormModels.OriginalSessionResult
		err := tx.Where("driver_result_id = ?", driverResultID).First(&original).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Resource: "original result", ID: driverResultID}
			}
			return err
		}

		return resetRowToOriginal(tx, &original)
	})
}

// ResetRaceToOriginal restores every driver row of every session under a
// race to the import-time snapshot. Running it twice yields the same state
// as running it once.
func (s *BackupService) ResetRaceToOriginal(ctx context.Context, raceID string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var race gormModels.Race
		err := tx.First(&race, "id = ?", raceID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Resource: "race", ID: raceID}
			}
			return err
		}

		var sessions []gormModels.SessionResult
		if err := tx.Where("race_id = ?", raceID).Find(&sessions).Error; err != nil {
			return err
		}

		restored := 0
		for _, session := range sessions {
			var originals []gormModels.OriginalSessionResult
			if err := tx.Where("session_result_id = ?", session.ID).Find(&originals).Error; err != nil {
				return err
			}
			for i := range originals {
				if err := resetRowToOriginal(tx, &originals[i]); err != nil {
					return err
				}
				restored++
			}
		}
		log.Printf("[BackupService] Reset race %s to original (%d rows)", raceID, restored)
		return nil
	})
}

// resetRowToOriginal overwrites the current row with the snapshot values,
// re-creating the row when a restore has removed it, and clears the manual
// penalties attached to it.
func resetRowToOriginal(tx *gorm.DB, original *gormModels.OriginalSessionResult) error {
	if err := tx.Where("driver_session_result_id = ?", original.DriverResultID).
		Delete(&gormModels.Penalty{}).Error; err != nil {
		return err
	}

	var current gormModels.DriverSessionResult
	err := tx.First(&current, "id = ?", original.DriverResultID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		row := currentFromOriginal(original)
		return tx.Create(&row).Error
	}
	if err != nil {
		return err
	}

	return tx.Model(&current).Updates(map[string]interface{}{
		"member_id":          original.MemberID,
		"position":           original.Position,
		"grid_position":      original.GridPosition,
		"points":             original.Points,
		"num_laps":           original.NumLaps,
		"best_lap_time_ms":   original.BestLapTimeMs,
		"sector1_time_ms":    original.Sector1TimeMs,
		"sector2_time_ms":    original.Sector2TimeMs,
		"sector3_time_ms":    original.Sector3TimeMs,
		"total_race_time_ms": original.TotalRaceTimeMs,
		"penalty_seconds":    original.PenaltySeconds,
		"warnings":           original.Warnings,
		"result_status":      original.ResultStatus,
		"dnf_reason":         original.DNFReason,
		"fastest_lap":        original.FastestLap,
		"pole_position":      original.PolePosition,
	}).Error
}

func currentFromOriginal(o *gormModels.OriginalSessionResult) gormModels.DriverSessionResult {
	return gormModels.DriverSessionResult{
		ID:              o.DriverResultID,
		SessionResultID: o.SessionResultID,
		MemberID:        o.MemberID,
		Position:        o.Position,
		GridPosition:    o.GridPosition,
		Points:          o.Points,
		NumLaps:         o.NumLaps,
		BestLapTimeMs:   o.BestLapTimeMs,
		Sector1TimeMs:   o.Sector1TimeMs,
		Sector2TimeMs:   o.Sector2TimeMs,
		Sector3TimeMs:   o.Sector3TimeMs,
		TotalRaceTimeMs: o.TotalRaceTimeMs,
		PenaltySeconds:  o.PenaltySeconds,
		Warnings:        o.Warnings,
		ResultStatus:    o.ResultStatus,
		DNFReason:       o.DNFReason,
		FastestLap:      o.FastestLap,
		PolePosition:    o.PolePosition,
		DriverName:      o.DriverName,
		CarNumber:       o.CarNumber,
		TeamName:        o.TeamName,
		NetworkID:       o.NetworkID,
		SteamID:         o.SteamID,
	}
}
