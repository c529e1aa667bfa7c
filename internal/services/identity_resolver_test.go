package services

import (
	"context"
	"testing"

	gormModels "apexleague/paddock/internal/models/gorm"
)

func mappingFor(member, name string) gormModels.DriverMapping {
	return gormModels.DriverMapping{
		ID:         "map-" + member,
		MemberID:   member,
		DriverName: name,
		IsActive:   true,
	}
}

func TestResolve_NetworkIDBeatsName(t *testing.T) {
	resolver := newTestResolver(setupTestDB(t))

	// Two mappings: one claims the name, the other the network id.
	byName := mappingFor("member-name", "Max Verstappen")
	byNet := mappingFor("member-net", "Someone Else")
	byNet.NetworkID = strPtr("net-1")

	raw := RawIdentity{DriverName: "Max Verstappen", NetworkID: strPtr("net-1")}
	res := resolver.Resolve(raw, []gormModels.DriverMapping{byName, byNet})

	if res.MemberID == nil || *res.MemberID != "member-net" {
		t.Errorf("Expected network id match to win, got %v", res.MemberID)
	}
}

func TestResolve_SteamIDBeatsNameAndTeam(t *testing.T) {
	resolver := newTestResolver(setupTestDB(t))

	byTeam := mappingFor("member-team", "Lando")
	byTeam.TeamName = strPtr("Papaya")
	bySteam := mappingFor("member-steam", "Different Name")
	bySteam.SteamID = strPtr("steam-9")

	raw := RawIdentity{DriverName: "Lando", TeamName: "Papaya", SteamID: strPtr("steam-9")}
	res := resolver.Resolve(raw, []gormModels.DriverMapping{byTeam, bySteam})

	if res.MemberID == nil || *res.MemberID != "member-steam" {
		t.Errorf("Expected steam id match to win, got %v", res.MemberID)
	}
}

func TestResolve_NameAndTeamBeatsBareName(t *testing.T) {
	resolver := newTestResolver(setupTestDB(t))

	bare := mappingFor("member-bare", "Carlos")
	withTeam := mappingFor("member-team", "Carlos")
	withTeam.TeamName = strPtr("Scuderia")

	raw := RawIdentity{DriverName: "carlos", TeamName: "SCUDERIA"}
	res := resolver.Resolve(raw, []gormModels.DriverMapping{bare, withTeam})

	if res.MemberID == nil || *res.MemberID != "member-team" {
		t.Errorf("Expected name+team match to win, got %v", res.MemberID)
	}
}

func TestResolve_NameMatchIsCaseInsensitive(t *testing.T) {
	resolver := newTestResolver(setupTestDB(t))

	m := mappingFor("member-1", "Oscar Piastri")
	res := resolver.Resolve(RawIdentity{DriverName: "OSCAR PIASTRI"}, []gormModels.DriverMapping{m})

	if res.MemberID == nil || *res.MemberID != "member-1" {
		t.Errorf("Expected case-insensitive name match, got %v", res.MemberID)
	}
}

func TestResolve_NoMatchLeavesMemberNil(t *testing.T) {
	resolver := newTestResolver(setupTestDB(t))

	m := mappingFor("member-1", "Known Driver")
	res := resolver.Resolve(RawIdentity{DriverName: "Guest 42"}, []gormModels.DriverMapping{m})

	if res.MemberID != nil {
		t.Errorf("Expected no resolution, got member %s", *res.MemberID)
	}
}

func TestResolveSession_PicksUpNewMappingAfterInvalidation(t *testing.T) {
	db := setupTestDB(t)
	season := seedSeason(t, db, "Season", true)
	member := seedMember(t, db, "Alex")
	resolver := newTestResolver(db)

	raw := []RawIdentity{{DriverName: "A. Verst"}}

	// Nothing mapped yet; the empty mapping set gets cached.
	out, err := resolver.ResolveSession(context.Background(), season.ID, raw)
	if err != nil {
		t.Fatalf("ResolveSession failed: %v", err)
	}
	if out[0].MemberID != nil {
		t.Fatalf("Expected unresolved entry before mapping exists")
	}

	mapping := gormModels.DriverMapping{
		SeasonID:   season.ID,
		MemberID:   member.ID,
		DriverName: "A. Verst",
		IsActive:   true,
	}
	if err := db.Create(&mapping).Error; err != nil {
		t.Fatalf("Failed to create mapping: %v", err)
	}

	resolver.InvalidateSeason(season.ID)

	out, err = resolver.ResolveSession(context.Background(), season.ID, raw)
	if err != nil {
		t.Fatalf("ResolveSession failed: %v", err)
	}
	if out[0].MemberID == nil || *out[0].MemberID != member.ID {
		t.Errorf("Expected new mapping visible after invalidation, got %v", out[0].MemberID)
	}
}
