package services

import (
	"context"
	"testing"

	gormModels "apexleague/paddock/internal/models/gorm"
)

func TestBackupRestore_RoundTrip(t *testing.T) {
	db := setupTestDB(t)
	resp, _, rows := importRaceSession(t, db)
	backups := NewBackupService(db)
	edits := newTestEditService(db)

	backup, err := backups.CreateBackup(context.Background(), resp.SessionResultID)
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}

	// Mutate after the backup.
	if err := edits.ChangePosition(context.Background(), resp.SessionResultID, rows[0].ID, 9, "penalty", "steward"); err != nil {
		t.Fatalf("ChangePosition failed: %v", err)
	}

	if err := backups.RestoreFromBackup(context.Background(), backup.ID); err != nil {
		t.Fatalf("RestoreFromBackup failed: %v", err)
	}

	var row gormModels.DriverSessionResult
	if err := db.First(&row, "id = ?", rows[0].ID).Error; err != nil {
		t.Fatalf("Row missing after restore: %v", err)
	}
	if row.Position != 1 {
		t.Errorf("Expected position restored to 1, got %d", row.Position)
	}
}

func TestRestoreFromBackup_UnknownBackup(t *testing.T) {
	db := setupTestDB(t)
	importRaceSession(t, db)
	backups := NewBackupService(db)

	err := backups.RestoreFromBackup(context.Background(), "missing-backup")
	if !IsNotFound(err) {
		t.Errorf("Expected not-found error, got %v", err)
	}
}

func TestResetDriverToOriginal_DropsEditsAndPenalties(t *testing.T) {
	db := setupTestDB(t)
	resp, _, rows := importRaceSession(t, db)
	backups := NewBackupService(db)
	edits := newTestEditService(db)

	if _, err := edits.AddPenalty(context.Background(), rows[0].ID, 5, "track limits", "steward"); err != nil {
		t.Fatalf("AddPenalty failed: %v", err)
	}
	if err := edits.ChangePosition(context.Background(), resp.SessionResultID, rows[0].ID, 7, "penalty", "steward"); err != nil {
		t.Fatalf("ChangePosition failed: %v", err)
	}

	if err := backups.ResetDriverToOriginal(context.Background(), resp.SessionResultID, rows[0].ID); err != nil {
		t.Fatalf("ResetDriverToOriginal failed: %v", err)
	}

	var row gormModels.DriverSessionResult
	db.First(&row, "id = ?", rows[0].ID)
	if row.Position != 1 {
		t.Errorf("Expected original position 1, got %d", row.Position)
	}

	var penaltyCount int64
	db.Model(&gormModels.Penalty{}).Where("driver_session_result_id = ?", rows[0].ID).Count(&penaltyCount)
	if penaltyCount != 0 {
		t.Errorf("Expected manual penalties dropped, got %d", penaltyCount)
	}

	// The edit trail survives resets; only the current rows change.
	var historyCount int64
	db.Model(&gormModels.RaceEditHistory{}).Where("session_result_id = ?", resp.SessionResultID).Count(&historyCount)
	if historyCount != 2 {
		t.Errorf("Expected history preserved (2 entries), got %d", historyCount)
	}
}

func TestResetRaceToOriginal_Idempotent(t *testing.T) {
	db := setupTestDB(t)
	resp, race, rows := importRaceSession(t, db)
	backups := NewBackupService(db)
	edits := newTestEditService(db)

	if err := edits.ChangePosition(context.Background(), resp.SessionResultID, rows[1].ID, 10, "penalty", "steward"); err != nil {
		t.Fatalf("ChangePosition failed: %v", err)
	}

	if err := backups.ResetRaceToOriginal(context.Background(), race.ID); err != nil {
		t.Fatalf("First reset failed: %v", err)
	}

	var afterFirst []gormModels.DriverSessionResult
	db.Where("session_result_id = ?", resp.SessionResultID).Order("position ASC").Find(&afterFirst)

	if err := backups.ResetRaceToOriginal(context.Background(), race.ID); err != nil {
		t.Fatalf("Second reset failed: %v", err)
	}

	var afterSecond []gormModels.DriverSessionResult
	db.Where("session_result_id = ?", resp.SessionResultID).Order("position ASC").Find(&afterSecond)

	if len(afterFirst) != len(afterSecond) {
		t.Fatalf("Row count changed between resets: %d vs %d", len(afterFirst), len(afterSecond))
	}
	for i := range afterFirst {
		if afterFirst[i].ID != afterSecond[i].ID ||
			afterFirst[i].Position != afterSecond[i].Position ||
			afterFirst[i].Points != afterSecond[i].Points ||
			afterFirst[i].ResultStatus != afterSecond[i].ResultStatus {
			t.Errorf("Row %d differs between first and second reset", i)
		}
	}
	if afterSecond[1].Position != 2 {
		t.Errorf("Expected original position 2 restored, got %d", afterSecond[1].Position)
	}
}

func TestResetRaceToOriginal_RecreatesDeletedRows(t *testing.T) {
	db := setupTestDB(t)
	resp, race, rows := importRaceSession(t, db)
	backups := NewBackupService(db)

	// Simulate a bad restore that lost a row.
	if err := db.Delete(&gormModels.DriverSessionResult{}, "id = ?", rows[0].ID).Error; err != nil {
		t.Fatalf("Failed to delete row: %v", err)
	}

	if err := backups.ResetRaceToOriginal(context.Background(), race.ID); err != nil {
		t.Fatalf("ResetRaceToOriginal failed: %v", err)
	}

	var count int64
	db.Model(&gormModels.DriverSessionResult{}).Where("session_result_id = ?", resp.SessionResultID).Count(&count)
	if count != 2 {
		t.Errorf("Expected deleted row recreated from snapshot, got %d rows", count)
	}

	var row gormModels.DriverSessionResult
	if err := db.First(&row, "id = ?", rows[0].ID).Error; err != nil {
		t.Fatalf("Recreated row not found under original id: %v", err)
	}
}
