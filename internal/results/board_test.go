package results

import (
	"fmt"
	"testing"

	"github.com/statpadgame/statpad-data/internal/game"
)

func result(date string, total float64) *game.ScoreResult {
	return &game.ScoreResult{
		Date:       date,
		Total:      total,
		Percentile: 90,
		Tier:       game.TierGold,
		ShareLine:  "🟨🟨🟨🟨🟨",
	}
}

func TestBoard_RecordAndGet(t *testing.T) {
	b := NewBoard(7)

	e := b.Record("alex", result("2024-01-15", 9000))
	if e.ID == "" {
		t.Fatal("entry should get an id")
	}
	if e.Name != "alex" || e.Total != 9000 || e.Tier != game.TierGold {
		t.Errorf("entry = %+v", e)
	}

	got, ok := b.Get(e.ID)
	if !ok || got.ID != e.ID {
		t.Errorf("Get(%s) = %+v ok %v", e.ID, got, ok)
	}
	if _, ok := b.Get("missing"); ok {
		t.Error("Get should miss for unknown ids")
	}
}

func TestBoard_TopOrdersByTotal(t *testing.T) {
	b := NewBoard(7)
	b.Record("low", result("2024-01-15", 1000))
	b.Record("high", result("2024-01-15", 9000))
	b.Record("mid", result("2024-01-15", 5000))
	b.Record("other-day", result("2024-01-14", 9999))

	top := b.Top("2024-01-15", 2)
	if len(top) != 2 {
		t.Fatalf("len = %d, want 2", len(top))
	}
	if top[0].Name != "high" || top[1].Name != "mid" {
		t.Errorf("order = %s, %s", top[0].Name, top[1].Name)
	}

	if got := b.Top("2024-01-16", 10); len(got) != 0 {
		t.Errorf("empty date should have no entries, got %d", len(got))
	}
}

func TestBoard_EvictsOldDates(t *testing.T) {
	b := NewBoard(2)

	var ids []string
	for day := 1; day <= 4; day++ {
		e := b.Record("", result(fmt.Sprintf("2024-01-%02d", day), 100))
		ids = append(ids, e.ID)
	}

	// Only the two newest dates survive.
	if got := b.Top("2024-01-01", 10); len(got) != 0 {
		t.Errorf("oldest date should be evicted, got %d entries", len(got))
	}
	if got := b.Top("2024-01-04", 10); len(got) != 1 {
		t.Errorf("newest date missing, got %d entries", len(got))
	}
	if _, ok := b.Get(ids[0]); ok {
		t.Error("evicted entry still reachable by id")
	}
	if _, ok := b.Get(ids[3]); !ok {
		t.Error("retained entry lost its id lookup")
	}
}
