// Package dataset holds the in-memory table of NFL player-season statistics
// and its filter/lookup operations. The table is read-only once loaded;
// sources are a flat CSV file or a Postgres player_stats table.
package dataset

import (
	"sort"
	"strings"
)

// Row is one player-season line. Stats maps stat id to value; an absent key
// means the stat is null for that player-season.
type Row struct {
	Player   string             `json:"player"`
	PlayerID string             `json:"player_id,omitempty"`
	Season   int                `json:"season"`
	Team     string             `json:"team"`
	Position string             `json:"position"`
	Stats    map[string]float64 `json:"stats"`
}

// Stat returns the value of a stat and whether it is defined.
func (r Row) Stat(id string) (float64, bool) {
	v, ok := r.Stats[id]
	return v, ok
}

// Constraints filters table rows. Zero values mean "no constraint" except
// Stat, which is always required: matching rows must have the stat defined
// with a positive value. Teams and Positions are any-of sets holding raw
// dataset abbreviations/codes.
type Constraints struct {
	Stat      string
	YearStart int
	YearEnd   int
	Teams     []string
	Positions []string
}

func (c Constraints) matches(r Row) bool {
	v, ok := r.Stat(c.Stat)
	if !ok || v <= 0 {
		return false
	}
	if c.YearStart != 0 && r.Season < c.YearStart {
		return false
	}
	if c.YearEnd != 0 && r.Season > c.YearEnd {
		return false
	}
	if len(c.Teams) > 0 && !containsFold(c.Teams, r.Team) {
		return false
	}
	if len(c.Positions) > 0 && !containsFold(c.Positions, r.Position) {
		return false
	}
	return true
}

// Table is the immutable in-memory dataset.
type Table struct {
	rows     []Row
	byPlayer map[string][]int // lowercased player name -> row indexes
	minYear  int
	maxYear  int
}

// New builds a table with lookup indexes from loaded rows.
func New(rows []Row) *Table {
	t := &Table{
		rows:     rows,
		byPlayer: make(map[string][]int, len(rows)),
	}
	for i, r := range rows {
		key := strings.ToLower(strings.TrimSpace(r.Player))
		t.byPlayer[key] = append(t.byPlayer[key], i)
		if t.minYear == 0 || r.Season < t.minYear {
			t.minYear = r.Season
		}
		if r.Season > t.maxYear {
			t.maxYear = r.Season
		}
	}
	return t
}

// Len returns the number of player-season rows.
func (t *Table) Len() int { return len(t.rows) }

// YearBounds returns the earliest and latest season in the table.
func (t *Table) YearBounds() (min, max int) { return t.minYear, t.maxYear }

// Lookup finds rows for a player name and season. Exact (case-insensitive)
// name matches are preferred; when none exist, substring matches are
// returned so partial inputs like "mahomes" still resolve.
func (t *Table) Lookup(player string, season int) []Row {
	name := strings.ToLower(strings.TrimSpace(player))
	if name == "" {
		return nil
	}

	var out []Row
	for _, i := range t.byPlayer[name] {
		if t.rows[i].Season == season {
			out = append(out, t.rows[i])
		}
	}
	if len(out) > 0 {
		return out
	}
	for _, r := range t.rows {
		if r.Season == season && strings.Contains(strings.ToLower(r.Player), name) {
			out = append(out, r)
		}
	}
	return out
}

// Query returns all rows matching the constraints, sorted by the constraint
// stat descending.
func (t *Table) Query(c Constraints) []Row {
	var out []Row
	for _, r := range t.rows {
		if c.matches(r) {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		vi, _ := out[i].Stat(c.Stat)
		vj, _ := out[j].Stat(c.Stat)
		return vi > vj
	})
	return out
}

// SearchPlayers returns up to limit distinct players whose name contains the
// query and who have at least one row matching the constraints, each with
// their best matching season. Results are ordered by stat value descending.
func (t *Table) SearchPlayers(query string, c Constraints, limit int) []Row {
	query = strings.ToLower(strings.TrimSpace(query))
	if len(query) < 2 {
		return nil
	}

	var out []Row
	seen := make(map[string]bool)
	for _, r := range t.Query(c) {
		if !strings.Contains(strings.ToLower(r.Player), query) {
			continue
		}
		key := strings.ToLower(r.Player)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, r)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out
}

// BestSeason returns the row with the highest constraint stat among a
// player's rows matching the constraints, or false when none match.
func (t *Table) BestSeason(player string, c Constraints) (Row, bool) {
	name := strings.ToLower(strings.TrimSpace(player))
	var best Row
	var bestVal float64
	found := false
	for _, r := range t.rows {
		if !strings.Contains(strings.ToLower(r.Player), name) {
			continue
		}
		if !c.matches(r) {
			continue
		}
		v, _ := r.Stat(c.Stat)
		if !found || v > bestVal {
			best, bestVal, found = r, v, true
		}
	}
	return best, found
}

func containsFold(set []string, s string) bool {
	for _, v := range set {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}
