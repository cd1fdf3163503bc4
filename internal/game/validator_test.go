package game

import (
	"testing"

	"github.com/statpadgame/statpad-data/internal/dataset"
)

func validatorTable() *dataset.Table {
	return dataset.New([]dataset.Row{
		{Player: "Derek Carr", Season: 2016, Team: "OAK", Position: "QB",
			Stats: map[string]float64{"passing_yards": 3937, "passing_tds": 28}},
		{Player: "Patrick Mahomes", Season: 2018, Team: "KC", Position: "QB",
			Stats: map[string]float64{"passing_yards": 5097, "passing_tds": 50}},
		{Player: "Patrick Mahomes", Season: 2020, Team: "KC", Position: "QB",
			Stats: map[string]float64{"passing_yards": 4740, "passing_tds": 38}},
		{Player: "Tyreek Hill", Season: 2020, Team: "KC", Position: "WR",
			Stats: map[string]float64{"receiving_yards": 1276, "receptions": 87}},
		{Player: "Frank Gore", Season: 2006, Team: "SF", Position: "RB",
			Stats: map[string]float64{"rushing_yards": 1695, "receiving_yards": 485}},
	})
}

func wantReason(t *testing.T, err error, reason PickReason) *InvalidPickError {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", reason)
	}
	ipe, ok := AsInvalidPick(err)
	if !ok {
		t.Fatalf("expected *InvalidPickError, got %T: %v", err, err)
	}
	if ipe.Reason != reason {
		t.Errorf("reason = %s, want %s (detail: %s)", ipe.Reason, reason, ipe.Detail)
	}
	if ipe.Row != -1 {
		t.Errorf("Row = %d, want -1 outside a submission", ipe.Row)
	}
	return ipe
}

func TestValidatePick_NotFound(t *testing.T) {
	table := validatorTable()
	stat := StatCategories["passing_yards"]

	_, err := ValidatePick(table, stat, Criteria{}, Pick{Player: "Nobody", Season: 2018})
	wantReason(t, err, ReasonNotFound)

	// Right player, wrong season.
	_, err = ValidatePick(table, stat, Criteria{}, Pick{Player: "Patrick Mahomes", Season: 2010})
	wantReason(t, err, ReasonNotFound)
}

func TestValidatePick_StatNotEligible(t *testing.T) {
	table := validatorTable()

	// A WR has no passing yards recorded.
	_, err := ValidatePick(table, StatCategories["passing_yards"], Criteria{},
		Pick{Player: "Tyreek Hill", Season: 2020})
	wantReason(t, err, ReasonStatNotEligible)

	// Frank Gore has receiving yards, and RB is an eligible receiving
	// position, so this is accepted.
	pr, err := ValidatePick(table, StatCategories["receiving_yards"], Criteria{},
		Pick{Player: "Frank Gore", Season: 2006})
	if err != nil {
		t.Fatalf("RB with receiving yards should be eligible: %v", err)
	}
	if pr.StatValue != 485 {
		t.Errorf("StatValue = %v, want 485", pr.StatValue)
	}
}

func TestValidatePick_ConstraintViolations(t *testing.T) {
	table := validatorTable()
	stat := StatCategories["passing_yards"]
	pick := Pick{Player: "Patrick Mahomes", Season: 2018}

	cases := []struct {
		name string
		row  Criteria
	}{
		{"year before range", Criteria{YearStart: 2019, YearEnd: 2022}},
		{"year after range", Criteria{YearStart: 2010, YearEnd: 2015}},
		{"wrong team", Criteria{Team: "SF"}},
		{"wrong position", Criteria{Position: "RB"}},
		{"wrong division", Criteria{Division: "NFC East"}},
		{"wrong conference", Criteria{Conference: "NFC"}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := ValidatePick(table, stat, c.row, pick)
			wantReason(t, err, ReasonConstraintViolation)
		})
	}
}

func TestValidatePick_HistoricalTeamCountsForFranchise(t *testing.T) {
	table := validatorTable()
	stat := StatCategories["passing_yards"]

	// OAK in the dataset satisfies an LV team constraint.
	pr, err := ValidatePick(table, stat, Criteria{Team: "LV"},
		Pick{Player: "Derek Carr", Season: 2016})
	if err != nil {
		t.Fatalf("historical abbreviation should satisfy the franchise: %v", err)
	}
	if pr.Team != "OAK" {
		t.Errorf("Team = %q, want the dataset value OAK", pr.Team)
	}

	// Division and conference resolve through the historical abbreviation too.
	if _, err := ValidatePick(table, stat, Criteria{Division: "AFC West"},
		Pick{Player: "Derek Carr", Season: 2016}); err != nil {
		t.Errorf("OAK should count as AFC West: %v", err)
	}
	if _, err := ValidatePick(table, stat, Criteria{Conference: "AFC"},
		Pick{Player: "Derek Carr", Season: 2016}); err != nil {
		t.Errorf("OAK should count as AFC: %v", err)
	}
}

func TestValidatePick_PartialNameResolves(t *testing.T) {
	table := validatorTable()
	stat := StatCategories["passing_yards"]

	pr, err := ValidatePick(table, stat, Criteria{}, Pick{Player: "mahomes", Season: 2018})
	if err != nil {
		t.Fatalf("substring lookup should resolve: %v", err)
	}
	if pr.Player != "Patrick Mahomes" || pr.StatValue != 5097 {
		t.Errorf("got %s with %v, want Patrick Mahomes with 5097", pr.Player, pr.StatValue)
	}
}

func TestValidatePick_AllConstraintsSatisfied(t *testing.T) {
	table := validatorTable()
	stat := StatCategories["passing_yards"]

	pr, err := ValidatePick(table, stat,
		Criteria{Team: "KC", YearStart: 2018, YearEnd: 2020, Position: "QB", Conference: "AFC"},
		Pick{Player: "Patrick Mahomes", Season: 2020})
	if err != nil {
		t.Fatalf("valid pick rejected: %v", err)
	}
	if pr.Season != 2020 || pr.StatValue != 4740 {
		t.Errorf("got season %d value %v, want 2020 with 4740", pr.Season, pr.StatValue)
	}
}
