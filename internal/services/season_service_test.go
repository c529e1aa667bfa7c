package services

import (
	"context"
	"testing"

	gormModels "apexleague/paddock/internal/models/gorm"
)

func TestCreateSeason_Validation(t *testing.T) {
	db := setupTestDB(t)
	seasons := NewSeasonService(db)

	if _, err := seasons.CreateSeason(context.Background(), "  ", 2025); !IsValidation(err) {
		t.Errorf("Expected validation error for blank name, got %v", err)
	}

	season, err := seasons.CreateSeason(context.Background(), "Division 1", 2025)
	if err != nil {
		t.Fatalf("CreateSeason failed: %v", err)
	}
	if season.IsActive {
		t.Error("New seasons must start inactive")
	}
}

func TestActivateSeason_DeactivatesOthers(t *testing.T) {
	db := setupTestDB(t)
	seasons := NewSeasonService(db)

	first := seedSeason(t, db, "Season 1", true)
	second := seedSeason(t, db, "Season 2", false)

	if err := seasons.ActivateSeason(context.Background(), second.ID); err != nil {
		t.Fatalf("ActivateSeason failed: %v", err)
	}

	var active []gormModels.Season
	db.Where("is_active = ?", true).Find(&active)
	if len(active) != 1 {
		t.Fatalf("Expected exactly one active season, got %d", len(active))
	}
	if active[0].ID != second.ID {
		t.Errorf("Wrong season active: %s", active[0].ID)
	}

	var old gormModels.Season
	db.First(&old, "id = ?", first.ID)
	if old.IsActive {
		t.Error("Previously active season must be deactivated")
	}
}

func TestActivateSeason_Unknown(t *testing.T) {
	db := setupTestDB(t)
	seasons := NewSeasonService(db)

	if err := seasons.ActivateSeason(context.Background(), "missing"); !IsNotFound(err) {
		t.Errorf("Expected not-found error, got %v", err)
	}
}

func TestSessionResults_OrderedWithPenalties(t *testing.T) {
	db := setupTestDB(t)
	resp, _, rows := importRaceSession(t, db)
	seasons := NewSeasonService(db)
	edits := newTestEditService(db)

	if _, err := edits.AddPenalty(context.Background(), rows[1].ID, 5, "track limits", "steward"); err != nil {
		t.Fatalf("AddPenalty failed: %v", err)
	}

	results, err := seasons.SessionResults(context.Background(), resp.SessionResultID)
	if err != nil {
		t.Fatalf("SessionResults failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(results))
	}
	if results[0].Position != 1 || results[1].Position != 2 {
		t.Error("Rows must be ordered by position")
	}
	if len(results[1].Penalties) != 1 {
		t.Errorf("Expected preloaded penalty on P2, got %d", len(results[1].Penalties))
	}
}
