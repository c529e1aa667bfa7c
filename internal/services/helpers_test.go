package services

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"apexleague/paddock/internal/common"
	"apexleague/paddock/internal/constants"
	"apexleague/paddock/internal/models/dtos"
	gormModels "apexleague/paddock/internal/models/gorm"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var testDBSeq atomic.Int64

// Setup test database. A plain ":memory:" DSN gives every pooled
// connection its own empty database, so queries outside the import
// transaction would not see the migrated tables; a uniquely named
// shared-cache DSN keeps all connections on one database per test.
func setupTestDB(t *testing.T) *gorm.DB {
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", testDBSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	// Auto migrate
	err = db.AutoMigrate(
		&gormModels.Season{},
		&gormModels.Track{},
		&gormModels.Race{},
		&gormModels.SessionResult{},
		&gormModels.DriverSessionResult{},
		&gormModels.OriginalSessionResult{},
		&gormModels.Penalty{},
		&gormModels.RaceEditHistory{},
		&gormModels.RaceBackup{},
		&gormModels.OrphanedSession{},
		&gormModels.DriverMapping{},
		&gormModels.Member{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}

	return db
}

// Mock Notifier
type mockNotifier struct {
	completed []dtos.SessionCompletedEvent
	orphaned  []dtos.OrphanedSessionEvent
}

func (m *mockNotifier) SessionCompleted(ctx context.Context, evt dtos.SessionCompletedEvent) error {
	m.completed = append(m.completed, evt)
	return nil
}

func (m *mockNotifier) SessionOrphaned(ctx context.Context, evt dtos.OrphanedSessionEvent) error {
	m.orphaned = append(m.orphaned, evt)
	return nil
}

// Mock StandingsRecalculator
type mockRecalculator struct {
	seasons []string
	err     error
}

func (m *mockRecalculator) Recalculate(ctx context.Context, seasonID string) error {
	m.seasons = append(m.seasons, seasonID)
	return m.err
}

// mappingSourceDB reads mappings straight off the test database.
type mappingSourceDB struct {
	db *gorm.DB
}

func (s *mappingSourceDB) ActiveBySeason(ctx context.Context, seasonID string) ([]gormModels.DriverMapping, error) {
	var mappings []gormModels.DriverMapping
	err := s.db.WithContext(ctx).
		Where("season_id = ? AND is_active = ?", seasonID, true).
		Find(&mappings).Error
	return mappings, err
}

func newTestResolver(db *gorm.DB) *IdentityResolver {
	return NewIdentityResolver(&mappingSourceDB{db: db}, common.NewCacheService(60, 600))
}

func newTestImporter(db *gorm.DB, notifier *mockNotifier, recalc *mockRecalculator) *ImportService {
	orphans := NewOrphanService(db, notifier)
	return NewImportService(db, newTestResolver(db), NewEventResolver(), orphans, recalc, notifier)
}

func seedSeason(t *testing.T, db *gorm.DB, name string, active bool) *gormModels.Season {
	t.Helper()
	season := gormModels.Season{Name: name, Year: 2025, IsActive: active}
	if err := db.Create(&season).Error; err != nil {
		t.Fatalf("Failed to seed season: %v", err)
	}
	return &season
}

func seedRace(t *testing.T, db *gorm.DB, seasonID, trackName string) *gormModels.Race {
	t.Helper()
	track := gormModels.Track{Name: trackName}
	if err := db.Create(&track).Error; err != nil {
		t.Fatalf("Failed to seed track: %v", err)
	}
	race := gormModels.Race{
		SeasonID: seasonID,
		TrackID:  track.ID,
		RaceDate: time.Now().UTC(),
		Status:   constants.RaceStatusScheduled,
	}
	if err := db.Create(&race).Error; err != nil {
		t.Fatalf("Failed to seed race: %v", err)
	}
	return &race
}

func seedMember(t *testing.T, db *gorm.DB, name string) *gormModels.Member {
	t.Helper()
	member := gormModels.Member{DisplayName: name, IsActive: true}
	if err := db.Create(&member).Error; err != nil {
		t.Fatalf("Failed to seed member: %v", err)
	}
	return &member
}

func strPtr(s string) *string { return &s }

// racePayload builds a two-driver race payload for the given track.
func racePayload(trackName string) dtos.SessionPayload {
	return dtos.SessionPayload{
		SessionInfo: dtos.SessionInfo{
			TrackName:   trackName,
			SessionType: string(constants.SessionRace),
		},
		DriverResults: []dtos.DriverResultPayload{
			{
				Position:        1,
				GridPosition:    2,
				Points:          25,
				NumLaps:         52,
				BestLapTimeMs:   92345,
				TotalRaceTimeMs: 5400123,
				ResultStatus:    constants.ResultStatusFinished,
				FastestLap:      true,
				DriverName:      "A. Verst",
				CarNumber:       1,
				TeamName:        "Blue Racing",
				NetworkID:       strPtr("net-100"),
			},
			{
				Position:        2,
				GridPosition:    1,
				Points:          18,
				NumLaps:         52,
				BestLapTimeMs:   92890,
				TotalRaceTimeMs: 5403456,
				ResultStatus:    constants.ResultStatusFinished,
				PolePosition:    true,
				DriverName:      "B. Hamil",
				CarNumber:       44,
				TeamName:        "Silver Arrows",
				NetworkID:       strPtr("net-200"),
			},
		},
	}
}

// importRaceSession seeds an active season plus a race and imports the
// payload under it, returning everything edit and backup tests need.
func importRaceSession(t *testing.T, db *gorm.DB) (*dtos.ImportResponse, *gormModels.Race, []gormModels.DriverSessionResult) {
	t.Helper()
	season := seedSeason(t, db, "Test Season", true)
	race := seedRace(t, db, season.ID, "Monza")

	importer := newTestImporter(db, &mockNotifier{}, &mockRecalculator{})
	resp, err := importer.ImportSession(context.Background(), racePayload("Monza"), &race.ID)
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}

	var rows []gormModels.DriverSessionResult
	if err := db.Where("session_result_id = ?", resp.SessionResultID).Order("position ASC").Find(&rows).Error; err != nil {
		t.Fatalf("Failed to load driver rows: %v", err)
	}
	return resp, race, rows
}
