package constants

import "testing"

func TestNormalizeTrackName(t *testing.T) {
	cases := map[string]string{
		"Red Bull Ring":    "red bull ring",
		"  Red  Bull Ring": "red bull ring",
		"MONZA":            "monza",
		"":                 "",
	}
	for in, want := range cases {
		if got := NormalizeTrackName(in); got != want {
			t.Errorf("NormalizeTrackName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestTrackAliases_SymmetricExpansion(t *testing.T) {
	austria := TrackAliases("Austria")
	spielberg := TrackAliases("spielberg")

	if len(austria) != 3 || len(spielberg) != 3 {
		t.Fatalf("Expected 3 aliases each, got %d and %d", len(austria), len(spielberg))
	}

	found := false
	for _, name := range austria {
		if name == "red bull ring" {
			found = true
		}
	}
	if !found {
		t.Error("Expected Austria to expand to red bull ring")
	}
}

func TestTrackAliases_UnknownTrack(t *testing.T) {
	aliases := TrackAliases("Nordschleife")
	if len(aliases) != 1 || aliases[0] != "nordschleife" {
		t.Errorf("Unknown track must expand to itself, got %v", aliases)
	}
}

func TestIsRaceSession(t *testing.T) {
	if !IsRaceSession(SessionRace) || !IsRaceSession(SessionRace2) {
		t.Error("race and race2 must count as race sessions")
	}
	if IsRaceSession(SessionQualifying1) || IsRaceSession(SessionTimeTrial) {
		t.Error("qualifying and time trial must not count as race sessions")
	}
}

func TestSessionTypeName_Fallback(t *testing.T) {
	if SessionTypeName(SessionRace) != "Race" {
		t.Errorf("Expected Race, got %s", SessionTypeName(SessionRace))
	}
	if SessionTypeName(SessionType("weird")) != "weird" {
		t.Errorf("Unknown types must fall back to the raw value")
	}
}
