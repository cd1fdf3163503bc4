package game

import (
	"strings"
	"testing"

	"github.com/statpadgame/statpad-data/internal/dataset"
)

func scorerTable() *dataset.Table {
	return dataset.New([]dataset.Row{
		{Player: "Ace Arm", Season: 2018, Team: "KC", Position: "QB",
			Stats: map[string]float64{"passing_yards": 5000}},
		{Player: "Ben Bomb", Season: 2018, Team: "SF", Position: "QB",
			Stats: map[string]float64{"passing_yards": 4000}},
		{Player: "Cal Cannon", Season: 2018, Team: "GB", Position: "QB",
			Stats: map[string]float64{"passing_yards": 3000}},
		{Player: "Dan Dart", Season: 2018, Team: "DAL", Position: "QB",
			Stats: map[string]float64{"passing_yards": 2000}},
	})
}

func scorerPuzzle() *Puzzle {
	return &Puzzle{
		Date:         "2024-01-15",
		StatCategory: "passing_yards",
		StatDisplay:  "PASS YDS",
		Rows: []Criteria{
			{YearStart: 2018, YearEnd: 2018},
			{Team: "KC"},
		},
	}
}

func TestScore_PercentilesAndTiers(t *testing.T) {
	table := scorerTable()
	puzzle := scorerPuzzle()

	result, err := Score(table, puzzle, Submission{Picks: []Pick{
		{Player: "Ben Bomb", Season: 2018},
		{Player: "Ace Arm", Season: 2018},
	}})
	if err != nil {
		t.Fatalf("Score: %v", err)
	}

	if result.Total != 9000 {
		t.Errorf("Total = %v, want 9000", result.Total)
	}
	if result.MaxScore != 10000 {
		t.Errorf("MaxScore = %v, want 10000", result.MaxScore)
	}
	if result.Percentile != 90 {
		t.Errorf("Percentile = %v, want 90", result.Percentile)
	}
	if result.Tier != TierGold {
		t.Errorf("Tier = %s, want gold", result.Tier)
	}

	// Row 0: 4000 among [5000 4000 3000 2000] is 3 of 4 at or below.
	row0 := result.PerRow[0]
	if row0.Percentile != 75 || row0.Rank != 2 || row0.TotalValid != 4 {
		t.Errorf("row 0 = pct %v rank %d of %d, want 75/2/4",
			row0.Percentile, row0.Rank, row0.TotalValid)
	}
	if row0.BestValue != 5000 {
		t.Errorf("row 0 BestValue = %v, want 5000", row0.BestValue)
	}
	if row0.Tier != TierSilver {
		t.Errorf("row 0 Tier = %s, want silver", row0.Tier)
	}

	// Row 1: the only valid answer, a perfect pick.
	row1 := result.PerRow[1]
	if row1.Percentile != 100 || row1.Rank != 1 || row1.TotalValid != 1 {
		t.Errorf("row 1 = pct %v rank %d of %d, want 100/1/1",
			row1.Percentile, row1.Rank, row1.TotalValid)
	}
	if row1.Tier != TierDiamond {
		t.Errorf("row 1 Tier = %s, want diamond", row1.Tier)
	}

	if result.ShareLine != TierSilver.Symbol()+TierDiamond.Symbol() {
		t.Errorf("ShareLine = %q", result.ShareLine)
	}
}

func TestScore_AllMaximaIsDiamond(t *testing.T) {
	table := scorerTable()
	puzzle := scorerPuzzle()

	result, err := Score(table, puzzle, Submission{Picks: []Pick{
		{Player: "Ace Arm", Season: 2018},
		{Player: "Ace Arm", Season: 2018},
	}})
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if result.Percentile != 100 {
		t.Errorf("Percentile = %v, want 100", result.Percentile)
	}
	if result.Tier != TierDiamond {
		t.Errorf("Tier = %s, want diamond", result.Tier)
	}
}

func TestScore_InvalidPickAbortsWithRowIndex(t *testing.T) {
	table := scorerTable()
	puzzle := scorerPuzzle()

	// Ben Bomb is not on KC, so row 1 fails.
	_, err := Score(table, puzzle, Submission{Picks: []Pick{
		{Player: "Ace Arm", Season: 2018},
		{Player: "Ben Bomb", Season: 2018},
	}})
	if err == nil {
		t.Fatal("expected an invalid pick error")
	}
	ipe, ok := AsInvalidPick(err)
	if !ok {
		t.Fatalf("expected *InvalidPickError, got %T: %v", err, err)
	}
	if ipe.Reason != ReasonConstraintViolation {
		t.Errorf("reason = %s, want CONSTRAINT_VIOLATION", ipe.Reason)
	}
	if ipe.Row != 1 {
		t.Errorf("Row = %d, want 1", ipe.Row)
	}
}

func TestScore_PickCountMismatch(t *testing.T) {
	table := scorerTable()
	puzzle := scorerPuzzle()

	_, err := Score(table, puzzle, Submission{Picks: []Pick{{Player: "Ace Arm", Season: 2018}}})
	if err == nil {
		t.Fatal("expected an error for too few picks")
	}
	if _, ok := AsInvalidPick(err); ok {
		t.Errorf("pick count mismatch should not be an invalid pick error: %v", err)
	}
}

func TestTierFor_Boundaries(t *testing.T) {
	cases := []struct {
		percentile float64
		want       Tier
	}{
		{100, TierDiamond},
		{99.9, TierGold},
		{90, TierGold},
		{89.9, TierSilver},
		{75, TierSilver},
		{74.9, TierBronze},
		{50, TierBronze},
		{49.9, TierIron},
		{0, TierIron},
	}
	for _, c := range cases {
		if got := TierFor(c.percentile); got != c.want {
			t.Errorf("TierFor(%v) = %s, want %s", c.percentile, got, c.want)
		}
	}
}

func TestRowLeaders(t *testing.T) {
	table := scorerTable()
	stat := StatCategories["passing_yards"]

	leaders := RowLeaders(table, stat, Criteria{YearStart: 2018, YearEnd: 2018}, 3)
	if len(leaders) != 3 {
		t.Fatalf("len = %d, want 3", len(leaders))
	}
	if leaders[0].Player != "Ace Arm" || leaders[0].Rank != 1 || leaders[0].StatValue != 5000 {
		t.Errorf("leader 1 = %+v", leaders[0])
	}
	if leaders[2].Player != "Cal Cannon" {
		t.Errorf("leader 3 = %s, want Cal Cannon", leaders[2].Player)
	}

	// n larger than the result set is clamped.
	if got := RowLeaders(table, stat, Criteria{Team: "KC"}, 10); len(got) != 1 {
		t.Errorf("clamped leaders len = %d, want 1", len(got))
	}
}

func TestShareText(t *testing.T) {
	table := scorerTable()
	puzzle := scorerPuzzle()

	result, err := Score(table, puzzle, Submission{Picks: []Pick{
		{Player: "Ben Bomb", Season: 2018},
		{Player: "Ace Arm", Season: 2018},
	}})
	if err != nil {
		t.Fatalf("Score: %v", err)
	}

	text := ShareText(puzzle, result, "statpad.example.com")
	for _, want := range []string{"2024-01-15", "PASS YDS", result.ShareLine, "Score: 9000 pts", "statpad.example.com"} {
		if !strings.Contains(text, want) {
			t.Errorf("share text missing %q:\n%s", want, text)
		}
	}
}
