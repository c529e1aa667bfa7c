package jobs

import (
	"context"
	"testing"
	"time"

	"apexleague/paddock/internal/common"
	"apexleague/paddock/internal/constants"
	gormModels "apexleague/paddock/internal/models/gorm"
	"apexleague/paddock/internal/services"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

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

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	err = db.AutoMigrate(
		&gormModels.Season{},
		&gormModels.Track{},
		&gormModels.Race{},
		&gormModels.SessionResult{},
		&gormModels.DriverSessionResult{},
		&gormModels.DriverMapping{},
		&gormModels.Member{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}
	return db
}

func seedUnresolvedRow(t *testing.T, db *gorm.DB, driverName string) (seasonID, rowID string) {
	t.Helper()

	season := gormModels.Season{Name: "Season", Year: 2025, IsActive: true}
	if err := db.Create(&season).Error; err != nil {
		t.Fatalf("seed season: %v", err)
	}
	track := gormModels.Track{Name: "Monza"}
	if err := db.Create(&track).Error; err != nil {
		t.Fatalf("seed track: %v", err)
	}
	race := gormModels.Race{SeasonID: season.ID, TrackID: track.ID, RaceDate: time.Now(), Status: constants.RaceStatusCompleted}
	if err := db.Create(&race).Error; err != nil {
		t.Fatalf("seed race: %v", err)
	}
	session := gormModels.SessionResult{RaceID: race.ID, SessionType: string(constants.SessionRace)}
	if err := db.Create(&session).Error; err != nil {
		t.Fatalf("seed session: %v", err)
	}
	row := gormModels.DriverSessionResult{
		SessionResultID: session.ID,
		Position:        1,
		ResultStatus:    constants.ResultStatusFinished,
		DriverName:      driverName,
	}
	if err := db.Create(&row).Error; err != nil {
		t.Fatalf("seed row: %v", err)
	}
	return season.ID, row.ID
}

func TestReResolveJob_ResolvesAfterMappingAdded(t *testing.T) {
	db := setupTestDB(t)
	seasonID, rowID := seedUnresolvedRow(t, db, "A. Verst")

	member := gormModels.Member{DisplayName: "Alex"}
	if err := db.Create(&member).Error; err != nil {
		t.Fatalf("seed member: %v", err)
	}
	mapping := gormModels.DriverMapping{
		SeasonID:   seasonID,
		MemberID:   member.ID,
		DriverName: "A. Verst",
		IsActive:   true,
	}
	if err := db.Create(&mapping).Error; err != nil {
		t.Fatalf("seed mapping: %v", err)
	}

	resolver := services.NewIdentityResolver(&mappingSourceDB{db: db}, common.NewCacheService(60, 600))
	job := NewReResolveJob(db, resolver)

	scanned, resolved, err := job.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if scanned != 1 || resolved != 1 {
		t.Errorf("Expected 1/1, got %d/%d", scanned, resolved)
	}

	var row gormModels.DriverSessionResult
	db.First(&row, "id = ?", rowID)
	if row.MemberID == nil || *row.MemberID != member.ID {
		t.Errorf("Expected row resolved to member %s, got %v", member.ID, row.MemberID)
	}
}

func TestReResolveJob_NothingToResolve(t *testing.T) {
	db := setupTestDB(t)

	resolver := services.NewIdentityResolver(&mappingSourceDB{db: db}, common.NewCacheService(60, 600))
	job := NewReResolveJob(db, resolver)

	scanned, resolved, err := job.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if scanned != 0 || resolved != 0 {
		t.Errorf("Expected 0/0, got %d/%d", scanned, resolved)
	}
}

func TestReResolveJob_LeavesUnmappedRowsAlone(t *testing.T) {
	db := setupTestDB(t)
	_, rowID := seedUnresolvedRow(t, db, "Guest 42")

	resolver := services.NewIdentityResolver(&mappingSourceDB{db: db}, common.NewCacheService(60, 600))
	job := NewReResolveJob(db, resolver)

	scanned, resolved, err := job.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if scanned != 1 || resolved != 0 {
		t.Errorf("Expected 1 scanned and 0 resolved, got %d/%d", scanned, resolved)
	}

	var row gormModels.DriverSessionResult
	db.First(&row, "id = ?", rowID)
	if row.MemberID != nil {
		t.Errorf("Unmappable row must stay unresolved, got %v", *row.MemberID)
	}
}
