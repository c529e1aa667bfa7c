package services

import (
	"context"
	"errors"
	"testing"

	"apexleague/paddock/internal/constants"
	"apexleague/paddock/internal/models/entities"
)

// Mock StandingsSource
type mockStandingsSource struct {
	rows []entities.RaceResultRow
	err  error
}

func (m *mockStandingsSource) RaceResultRows(ctx context.Context, seasonID string) ([]entities.RaceResultRow, error) {
	return m.rows, m.err
}

func TestComputeStandings_AggregatesAndOrders(t *testing.T) {
	source := &mockStandingsSource{rows: []entities.RaceResultRow{
		// Race 1
		{MemberID: "m1", Position: 1, Points: 25, ResultStatus: constants.ResultStatusFinished, FastestLap: true},
		{MemberID: "m2", Position: 2, Points: 18, ResultStatus: constants.ResultStatusFinished, PolePosition: true},
		{MemberID: "m3", Position: 3, Points: 15, ResultStatus: constants.ResultStatusFinished},
		// Race 2
		{MemberID: "m2", Position: 1, Points: 25, ResultStatus: constants.ResultStatusFinished},
		{MemberID: "m1", Position: 2, Points: 18, ResultStatus: constants.ResultStatusFinished, PenaltySeconds: 5},
		{MemberID: "m3", Position: 12, Points: 0, ResultStatus: constants.ResultStatusDNF, Warnings: 2},
	}}

	standings, err := NewStandingsService(source).Compute(context.Background(), "season-1")
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}

	if len(standings) != 3 {
		t.Fatalf("Expected 3 rows, got %d", len(standings))
	}

	// m1 and m2 both hold 43 points and one win; best finish ties too, so
	// member id breaks the tie.
	if standings[0].MemberID != "m1" || standings[1].MemberID != "m2" {
		t.Errorf("Unexpected order: %s, %s", standings[0].MemberID, standings[1].MemberID)
	}

	first := standings[0]
	if first.TotalPoints != 43 || first.Wins != 1 || first.Podiums != 2 || first.Races != 2 {
		t.Errorf("Wrong aggregates for m1: %+v", first)
	}
	if first.FastestLaps != 1 || first.PenaltySecs != 5 {
		t.Errorf("Wrong fastest laps/penalties for m1: %+v", first)
	}

	third := standings[2]
	if third.MemberID != "m3" {
		t.Fatalf("Expected m3 last, got %s", third.MemberID)
	}
	// The DNF must not count as a classified finish.
	if third.BestFinish != 3 {
		t.Errorf("Expected best finish 3 for m3, got %d", third.BestFinish)
	}
	if third.Warnings != 2 {
		t.Errorf("Expected 2 warnings for m3, got %d", third.Warnings)
	}
}

func TestComputeStandings_UnclassifiedOnlyMemberSortsLast(t *testing.T) {
	source := &mockStandingsSource{rows: []entities.RaceResultRow{
		{MemberID: "dnf-only", Position: 5, Points: 0, ResultStatus: constants.ResultStatusDNF},
		{MemberID: "finisher", Position: 8, Points: 0, ResultStatus: constants.ResultStatusFinished},
	}}

	standings, err := NewStandingsService(source).Compute(context.Background(), "season-1")
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}

	if standings[0].MemberID != "finisher" {
		t.Errorf("Member with a classified finish must rank above DNF-only member")
	}
	if standings[1].BestFinish != 0 {
		t.Errorf("DNF-only member must carry best finish 0, got %d", standings[1].BestFinish)
	}
}

func TestComputeStandings_SourceError(t *testing.T) {
	source := &mockStandingsSource{err: errors.New("db down")}

	_, err := NewStandingsService(source).Compute(context.Background(), "season-1")
	if err == nil {
		t.Fatal("Expected error from failing source")
	}
}
