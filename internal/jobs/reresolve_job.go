package jobs

import (
	"context"
	"fmt"
	"log"
	"time"

	"apexleague/paddock/internal/services"
	gormModels "apexleague/paddock/internal/models/gorm"

	"gorm.io/gorm"
)

// ReResolveJob re-runs identity resolution over unresolved driver rows
// using the raw identity fields preserved at import time. Run after new
// driver mappings are registered so old sessions pick them up.
type ReResolveJob struct {
	db       *gorm.DB
	resolver *services.IdentityResolver
}

// NewReResolveJob creates a new re-resolution job instance
func NewReResolveJob(db *gorm.DB, resolver *services.IdentityResolver) *ReResolveJob {
	return &ReResolveJob{db: db, resolver: resolver}
}

// Run executes the re-resolution pass for every season that has
// unresolved rows. Returns (scanned, resolved).
func (j *ReResolveJob) Run(ctx context.Context) (int, int, error) {
	start := time.Now()
	log.Printf("[ReResolveJob] Starting re-resolution at %s", start.Format(time.RFC3339))

	var seasonIDs []string
	err := j.db.WithContext(ctx).
		Table("driver_session_results").
		Joins("JOIN session_results ON session_results.id = driver_session_results.session_result_id").
		Joins("JOIN races ON races.id = session_results.race_id").
		Where("driver_session_results.member_id IS NULL").
		Distinct().
		Pluck("races.season_id", &seasonIDs).Error
	if err != nil {
		return 0, 0, fmt.Errorf("failed to find seasons with unresolved rows: %w", err)
	}

	if len(seasonIDs) == 0 {
		log.Printf("[ReResolveJob] Nothing to resolve")
		return 0, 0, nil
	}

	totalScanned := 0
	totalResolved := 0
	for _, seasonID := range seasonIDs {
		scanned, resolved, err := j.ResolveSeason(ctx, seasonID)
		if err != nil {
			log.Printf("[ReResolveJob] Error resolving season %s: %v", seasonID, err)
			// Continue with other seasons even if one fails
			continue
		}
		totalScanned += scanned
		totalResolved += resolved
	}

	log.Printf("[ReResolveJob] Completed in %s. Scanned: %d, Resolved: %d",
		time.Since(start).Truncate(time.Millisecond), totalScanned, totalResolved)
	return totalScanned, totalResolved, nil
}

// ResolveSeason re-resolves the unresolved rows of one season.
func (j *ReResolveJob) ResolveSeason(ctx context.Context, seasonID string) (int, int, error) {
	var rows []gormModels.DriverSessionResult
	err := j.db.WithContext(ctx).
		Joins("JOIN session_results ON session_results.id = driver_session_results.session_result_id").
		Joins("JOIN races ON races.id = session_results.race_id").
		Where("driver_session_results.member_id IS NULL AND races.season_id = ?", seasonID).
		Find(&rows).Error
	if err != nil {
		return 0, 0, fmt.Errorf("failed to query unresolved rows: %w", err)
	}

	if len(rows) == 0 {
		return 0, 0, nil
	}

	ids := make([]services.RawIdentity, len(rows))
	for i, row := range rows {
		ids[i] = services.RawIdentity{
			DriverName: row.DriverName,
			TeamName:   row.TeamName,
			CarNumber:  row.CarNumber,
			NetworkID:  row.NetworkID,
			SteamID:    row.SteamID,
		}
	}

	resolutions, err := j.resolver.ResolveSession(ctx, seasonID, ids)
	if err != nil {
		return len(rows), 0, err
	}

	resolved := 0
	for i, res := range resolutions {
		if res.MemberID == nil {
			continue
		}
		err := j.db.WithContext(ctx).
			Model(&gormModels.DriverSessionResult{}).
			Where("id = ?", rows[i].ID).
			Update("member_id", *res.MemberID).Error
		if err != nil {
			log.Printf("[ReResolveJob] Season %s: failed to update row %s: %v", seasonID, rows[i].ID, err)
			continue
		}
		resolved++
	}

	log.Printf("[ReResolveJob] Season %s: scanned %d, resolved %d", seasonID, len(rows), resolved)
	return len(rows), resolved, nil
}
