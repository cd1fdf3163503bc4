package game

import (
	"sort"
	"testing"
)

func TestNormalizeTeam(t *testing.T) {
	cases := map[string]string{
		"OAK": "LV",
		"SD":  "LAC",
		"STL": "LAR",
		"LA":  "LAR",
		"PHO": "ARI",
		"kc":  "KC",
		" gb": "GB",
		"KC":  "KC",
	}
	for in, want := range cases {
		if got := NormalizeTeam(in); got != want {
			t.Errorf("NormalizeTeam(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestTeamVariants(t *testing.T) {
	lv := TeamVariants("LV")
	sort.Strings(lv)
	want := []string{"LV", "OAK", "RAI"}
	if len(lv) != len(want) {
		t.Fatalf("LV variants = %v, want %v", lv, want)
	}
	for i := range want {
		if lv[i] != want[i] {
			t.Errorf("LV variants = %v, want %v", lv, want)
			break
		}
	}

	// Teams that never moved map to themselves.
	if got := TeamVariants("GB"); len(got) != 1 || got[0] != "GB" {
		t.Errorf("GB variants = %v, want [GB]", got)
	}
}

func TestTeamDivisionAndConference(t *testing.T) {
	if got := TeamDivision("KC"); got != "AFC West" {
		t.Errorf("TeamDivision(KC) = %q, want AFC West", got)
	}
	// Historical abbreviations resolve through the current franchise.
	if got := TeamDivision("STL"); got != "NFC West" {
		t.Errorf("TeamDivision(STL) = %q, want NFC West", got)
	}
	if got := TeamConference("OAK"); got != "AFC" {
		t.Errorf("TeamConference(OAK) = %q, want AFC", got)
	}
	if got := TeamConference("XYZ"); got != "" {
		t.Errorf("TeamConference(XYZ) = %q, want empty", got)
	}
}

func TestDivisionMembership(t *testing.T) {
	for _, div := range Divisions {
		if got := len(TeamsInDivision(div)); got != 4 {
			t.Errorf("%s has %d teams, want 4", div, got)
		}
	}
	for _, conf := range Conferences {
		if got := len(TeamsInConference(conf)); got != 16 {
			t.Errorf("%s has %d teams, want 16", conf, got)
		}
	}
}
