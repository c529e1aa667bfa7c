package repositories

import (
	"context"

	"apexleague/paddock/internal/constants"
	"apexleague/paddock/internal/models/entities"

	"github.com/jmoiron/sqlx"
)

// StandingsRepository reads the race-type result rows standings are derived
// from. Read-only; standings have no persisted table and are recomputed on
// demand.
type StandingsRepository struct {
	db *sqlx.DB
}

func NewStandingsRepository(db *sqlx.DB) *StandingsRepository {
	return &StandingsRepository{db: db}
}

func (r *StandingsRepository) RaceResultRows(ctx context.Context, seasonID string) ([]entities.RaceResultRow, error) {
	var rows []entities.RaceResultRow
	if err := r.db.SelectContext(ctx, &rows, constants.GetSeasonRaceResults, seasonID); err != nil {
		return nil, err
	}
	return rows, nil
}
