package services

import (
	"context"
	"testing"

	"apexleague/paddock/internal/constants"
	gormModels "apexleague/paddock/internal/models/gorm"
)

func TestOrphanLifecycle_Process(t *testing.T) {
	db := setupTestDB(t)
	season := seedSeason(t, db, "Season", true)
	race := seedRace(t, db, season.ID, "Monza")

	notifier := &mockNotifier{}
	orphans := NewOrphanService(db, notifier)

	orphan, err := orphans.HandleOrphanedSession(context.Background(), racePayload("Mystery Circuit"))
	if err != nil {
		t.Fatalf("HandleOrphanedSession failed: %v", err)
	}
	if orphan.Status != constants.OrphanStatusPending {
		t.Fatalf("Expected pending orphan, got %s", orphan.Status)
	}
	if len(notifier.orphaned) != 1 {
		t.Errorf("Expected 1 orphan notification, got %d", len(notifier.orphaned))
	}

	pending, err := orphans.ListPending(context.Background())
	if err != nil {
		t.Fatalf("ListPending failed: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("Expected 1 pending orphan, got %d", len(pending))
	}

	if err := orphans.ProcessOrphanedSession(context.Background(), orphan.ID, race.ID); err != nil {
		t.Fatalf("ProcessOrphanedSession failed: %v", err)
	}

	var updated gormModels.OrphanedSession
	db.First(&updated, "id = ?", orphan.ID)
	if updated.Status != constants.OrphanStatusProcessed {
		t.Errorf("Expected processed status, got %s", updated.Status)
	}
	if updated.RaceID == nil || *updated.RaceID != race.ID {
		t.Errorf("Expected race linked, got %v", updated.RaceID)
	}
	if updated.ProcessedAt == nil {
		t.Error("Expected processed_at set")
	}

	// The payload stays in place for audit.
	if updated.Payload == "" {
		t.Error("Expected payload preserved after processing")
	}
}

func TestOrphanLifecycle_DoubleProcessRejected(t *testing.T) {
	db := setupTestDB(t)
	season := seedSeason(t, db, "Season", true)
	race := seedRace(t, db, season.ID, "Monza")
	orphans := NewOrphanService(db, &mockNotifier{})

	orphan, err := orphans.HandleOrphanedSession(context.Background(), racePayload("Mystery Circuit"))
	if err != nil {
		t.Fatalf("HandleOrphanedSession failed: %v", err)
	}

	if err := orphans.ProcessOrphanedSession(context.Background(), orphan.ID, race.ID); err != nil {
		t.Fatalf("First process failed: %v", err)
	}
	if err := orphans.ProcessOrphanedSession(context.Background(), orphan.ID, race.ID); !IsValidation(err) {
		t.Errorf("Expected validation error on double process, got %v", err)
	}
}

func TestOrphanLifecycle_Ignore(t *testing.T) {
	db := setupTestDB(t)
	orphans := NewOrphanService(db, &mockNotifier{})

	orphan, err := orphans.HandleOrphanedSession(context.Background(), racePayload("Mystery Circuit"))
	if err != nil {
		t.Fatalf("HandleOrphanedSession failed: %v", err)
	}

	if err := orphans.IgnoreOrphanedSession(context.Background(), orphan.ID); err != nil {
		t.Fatalf("IgnoreOrphanedSession failed: %v", err)
	}

	var updated gormModels.OrphanedSession
	db.First(&updated, "id = ?", orphan.ID)
	if updated.Status != constants.OrphanStatusIgnored {
		t.Errorf("Expected ignored status, got %s", updated.Status)
	}

	pending, _ := orphans.ListPending(context.Background())
	if len(pending) != 0 {
		t.Errorf("Expected no pending orphans, got %d", len(pending))
	}
}

func TestProcessOrphan_UnknownRace(t *testing.T) {
	db := setupTestDB(t)
	orphans := NewOrphanService(db, &mockNotifier{})

	orphan, err := orphans.HandleOrphanedSession(context.Background(), racePayload("Mystery Circuit"))
	if err != nil {
		t.Fatalf("HandleOrphanedSession failed: %v", err)
	}

	if err := orphans.ProcessOrphanedSession(context.Background(), orphan.ID, "missing-race"); !IsNotFound(err) {
		t.Errorf("Expected not-found error, got %v", err)
	}

	var updated gormModels.OrphanedSession
	db.First(&updated, "id = ?", orphan.ID)
	if updated.Status != constants.OrphanStatusPending {
		t.Errorf("Orphan must stay pending after failed link, got %s", updated.Status)
	}
}
