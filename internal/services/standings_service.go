package services

import (
	"context"
	"fmt"
	"log"
	"sort"

	"apexleague/paddock/internal/constants"
	"apexleague/paddock/internal/models/dtos"
	"apexleague/paddock/internal/models/entities"
)

// StandingsSource supplies the race-type result rows standings derive from.
type StandingsSource interface {
	RaceResultRows(ctx context.Context, seasonID string) ([]entities.RaceResultRow, error)
}

// StandingsService computes season standings on demand. There is no
// persisted standings table; the computation is a pure read-aggregate pass
// over race-type sessions with a resolved member, so it can run any number
// of times, concurrently with imports, and never needs a rollback.
type StandingsService struct {
	source StandingsSource
}

func NewStandingsService(source StandingsSource) *StandingsService {
	return &StandingsService{source: source}
}

// Compute aggregates one season's standings, ordered by points, then wins,
// then best finish.
func (s *StandingsService) Compute(ctx context.Context, seasonID string) ([]dtos.StandingsRow, error) {
	rows, err := s.source.RaceResultRows(ctx, seasonID)
	if err != nil {
		return nil, fmt.Errorf("failed to load race results for season %s: %w", seasonID, err)
	}
	return aggregateStandings(rows), nil
}

// Recalculate recomputes and logs the season summary. Used by the importer
// after each race session; failures are the caller's to swallow.
func (s *StandingsService) Recalculate(ctx context.Context, seasonID string) error {
	standings, err := s.Compute(ctx, seasonID)
	if err != nil {
		return err
	}
	log.Printf("[StandingsService] Season %s: %d members classified", seasonID, len(standings))
	return nil
}

func aggregateStandings(rows []entities.RaceResultRow) []dtos.StandingsRow {
	byMember := make(map[string]*dtos.StandingsRow)

	for _, row := range rows {
		agg, ok := byMember[row.MemberID]
		if !ok {
			agg = &dtos.StandingsRow{MemberID: row.MemberID}
			byMember[row.MemberID] = agg
		}

		agg.Races++
		agg.TotalPoints += row.Points
		agg.PenaltySecs += row.PenaltySeconds
		agg.Warnings += row.Warnings
		if row.FastestLap {
			agg.FastestLaps++
		}
		if row.PolePosition {
			agg.PolePositions++
		}

		classified := row.ResultStatus == constants.ResultStatusFinished
		if classified {
			if row.Position == 1 {
				agg.Wins++
			}
			if row.Position <= 3 {
				agg.Podiums++
			}
			if agg.BestFinish == 0 || row.Position < agg.BestFinish {
				agg.BestFinish = row.Position
			}
		}
	}

	out := make([]dtos.StandingsRow, 0, len(byMember))
	for _, agg := range byMember {
		out = append(out, *agg)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalPoints != out[j].TotalPoints {
			return out[i].TotalPoints > out[j].TotalPoints
		}
		if out[i].Wins != out[j].Wins {
			return out[i].Wins > out[j].Wins
		}
		if out[i].BestFinish != out[j].BestFinish {
			if out[i].BestFinish == 0 {
				return false
			}
			if out[j].BestFinish == 0 {
				return true
			}
			return out[i].BestFinish < out[j].BestFinish
		}
		return out[i].MemberID < out[j].MemberID
	})
	return out
}
