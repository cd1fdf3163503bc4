package game

import "testing"

func TestValidateCatalog(t *testing.T) {
	if err := ValidateCatalog(); err != nil {
		t.Fatalf("catalog is inconsistent: %v", err)
	}
}

func TestPositionsFor(t *testing.T) {
	rb := PositionsFor("RB")
	if len(rb) != 2 || rb[0] != "RB" || rb[1] != "FB" {
		t.Errorf("PositionsFor(RB) = %v, want [RB FB]", rb)
	}
	// Unknown positions match only themselves.
	if got := PositionsFor("EDGE"); len(got) != 1 || got[0] != "EDGE" {
		t.Errorf("PositionsFor(EDGE) = %v, want [EDGE]", got)
	}
}

func TestStatIDsStableOrder(t *testing.T) {
	a := StatIDs()
	b := StatIDs()
	if len(a) != len(StatCategories) {
		t.Fatalf("StatIDs len = %d, want %d", len(a), len(StatCategories))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("StatIDs order unstable at %d: %s vs %s", i, a[i], b[i])
		}
		if i > 0 && a[i-1] >= a[i] {
			t.Errorf("StatIDs not sorted: %s before %s", a[i-1], a[i])
		}
	}
}

func TestEligiblePosition(t *testing.T) {
	passing := StatCategories["passing_yards"]
	if !passing.EligiblePosition("QB") {
		t.Error("QB should be eligible for passing yards")
	}
	if passing.EligiblePosition("WR") {
		t.Error("WR should not be eligible for passing yards")
	}
}
