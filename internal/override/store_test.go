package override

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/statpadgame/statpad-data/internal/game"
)

func validPuzzle() *game.Puzzle {
	return &game.Puzzle{
		StatCategory: "passing_yards",
		Rows: []game.Criteria{
			{Team: "KC", YearStart: 2010, YearEnd: 2020},
			{Position: "QB", YearStart: 2000, YearEnd: 2010},
			{Division: "NFC West", YearStart: 2005, YearEnd: 2015},
			{Conference: "AFC", YearStart: 1999, YearEnd: 2005},
			{YearStart: 2015, YearEnd: 2020},
		},
	}
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "overrides.json"))
}

func TestStore_SetGetDeleteList(t *testing.T) {
	s := newTestStore(t)

	if _, ok, err := s.Get("2024-01-15"); err != nil || ok {
		t.Fatalf("empty store Get = ok %v err %v, want miss", ok, err)
	}

	if err := s.Set("2024-01-15", validPuzzle()); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.Set("2024-01-10", validPuzzle()); err != nil {
		t.Fatalf("Set: %v", err)
	}

	p, ok, err := s.Get("2024-01-15")
	if err != nil || !ok {
		t.Fatalf("Get = ok %v err %v, want hit", ok, err)
	}
	if p.Date != "2024-01-15" {
		t.Errorf("Set should stamp the date, got %q", p.Date)
	}

	all, err := s.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 2 || all[0].Date != "2024-01-10" || all[1].Date != "2024-01-15" {
		t.Errorf("List not sorted by date: %v", all)
	}

	if err := s.Delete("2024-01-15"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok, _ := s.Get("2024-01-15"); ok {
		t.Error("deleted override still present")
	}
	// Deleting a missing key is a no-op.
	if err := s.Delete("1999-01-01"); err != nil {
		t.Errorf("Delete missing key: %v", err)
	}
}

func TestStore_SetLeavesArgumentUntouched(t *testing.T) {
	s := newTestStore(t)

	p := validPuzzle()
	if err := s.Set("2024-01-15", p); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if p.Date != "" {
		t.Errorf("Set mutated the caller's puzzle: Date = %q", p.Date)
	}

	// The stored copy still carries the date key.
	got, ok, err := s.Get("2024-01-15")
	if err != nil || !ok {
		t.Fatalf("Get = ok %v err %v, want hit", ok, err)
	}
	if got.Date != "2024-01-15" {
		t.Errorf("stored Date = %q, want 2024-01-15", got.Date)
	}
}

func TestStore_RejectsInvalidPuzzle(t *testing.T) {
	s := newTestStore(t)

	bad := validPuzzle()
	bad.StatCategory = "made_up_stat"
	if err := s.Set("2024-01-15", bad); !errors.Is(err, ErrConflict) {
		t.Errorf("unknown stat: err = %v, want ErrConflict", err)
	}

	short := validPuzzle()
	short.Rows = short.Rows[:3]
	if err := s.Set("2024-01-15", short); !errors.Is(err, ErrConflict) {
		t.Errorf("wrong row count: err = %v, want ErrConflict", err)
	}

	dup := validPuzzle()
	dup.Rows[1] = dup.Rows[0]
	if err := s.Set("2024-01-15", dup); !errors.Is(err, ErrConflict) {
		t.Errorf("duplicate rows: err = %v, want ErrConflict", err)
	}
}

func TestStore_CorruptFileIsConflict(t *testing.T) {
	path := filepath.Join(t.TempDir(), "overrides.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	s := NewStore(path)

	if _, _, err := s.Get("2024-01-15"); !errors.Is(err, ErrConflict) {
		t.Errorf("Get on corrupt file: err = %v, want ErrConflict", err)
	}
	if _, err := s.List(); !errors.Is(err, ErrConflict) {
		t.Errorf("List on corrupt file: err = %v, want ErrConflict", err)
	}
}

func TestStore_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "overrides.json")

	s := NewStore(path)
	if err := s.Set("2024-01-15", validPuzzle()); err != nil {
		t.Fatalf("Set: %v", err)
	}

	reopened := NewStore(path)
	if _, ok, err := reopened.Get("2024-01-15"); err != nil || !ok {
		t.Errorf("reopened store Get = ok %v err %v, want hit", ok, err)
	}
}
