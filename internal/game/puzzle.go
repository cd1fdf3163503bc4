package game

import (
	"fmt"
	"strings"

	"github.com/statpadgame/statpad-data/internal/dataset"
)

// NumRows is the number of criteria rows in every puzzle.
const NumRows = 5

// Criteria is one row's constraint set. Every field is optional; all set
// fields must hold for a pick to be valid.
type Criteria struct {
	Team       string `json:"team,omitempty"`
	YearStart  int    `json:"year_start,omitempty"`
	YearEnd    int    `json:"year_end,omitempty"`
	Position   string `json:"position,omitempty"`
	Division   string `json:"division,omitempty"`
	Conference string `json:"conference,omitempty"`
}

// Constraints resolves the criteria into a dataset query for the given stat:
// team variants, division and conference membership, and position groups are
// expanded to raw dataset values. Team, division, and conference all narrow
// the same team list, so a row combining them queries only franchises that
// satisfy every one.
func (c Criteria) Constraints(stat string) dataset.Constraints {
	dc := dataset.Constraints{
		Stat:      stat,
		YearStart: c.YearStart,
		YearEnd:   c.YearEnd,
	}
	if c.Team != "" || c.Division != "" || c.Conference != "" {
		candidates := teamAbbrs()
		if c.Team != "" {
			candidates = []string{c.Team}
		}
		var teams []string
		for _, abbr := range candidates {
			if c.Division != "" && TeamDivision(abbr) != c.Division {
				continue
			}
			if c.Conference != "" && TeamConference(abbr) != c.Conference {
				continue
			}
			teams = append(teams, TeamVariants(abbr)...)
		}
		if len(teams) == 0 {
			// A contradictory combination matches no franchise. The query
			// treats an empty team list as unconstrained, so pin it to a
			// value no dataset row carries.
			teams = []string{"\x00"}
		}
		dc.Teams = teams
	}
	if c.Position != "" {
		dc.Positions = PositionsFor(c.Position)
	}
	return dc
}

// Key returns a canonical string identifying the constraint set, used to
// reject duplicate rows within one puzzle.
func (c Criteria) Key() string {
	return fmt.Sprintf("t=%s|y=%d-%d|p=%s|d=%s|c=%s",
		c.Team, c.YearStart, c.YearEnd, c.Position, c.Division, c.Conference)
}

// Display renders the criteria as a human-readable label.
func (c Criteria) Display() string {
	var parts []string
	if c.Team != "" {
		if t, ok := Teams[c.Team]; ok {
			parts = append(parts, t.Name)
		} else {
			parts = append(parts, c.Team)
		}
	}
	if c.Position != "" {
		parts = append(parts, c.Position)
	}
	if c.Division != "" {
		parts = append(parts, c.Division)
	}
	if c.Conference != "" {
		parts = append(parts, c.Conference)
	}
	if c.YearStart != 0 && c.YearEnd != 0 {
		parts = append(parts, fmt.Sprintf("%d-%d", c.YearStart, c.YearEnd))
	}
	return strings.Join(parts, ", ")
}

// Puzzle is one day's game: a stat to maximize and five criteria rows.
type Puzzle struct {
	Date         string     `json:"date"`
	StatCategory string     `json:"stat_category"`
	StatDisplay  string     `json:"stat_display"`
	StatType     string     `json:"stat_type"`
	StatDesc     string     `json:"stat_description"`
	Rows         []Criteria `json:"rows"`
}

// Validate checks a puzzle's structural invariants: a known stat category
// and exactly NumRows distinct rows. Used for admin overrides.
func (p *Puzzle) Validate() error {
	if _, ok := StatCategories[p.StatCategory]; !ok {
		return fmt.Errorf("unknown stat category %q", p.StatCategory)
	}
	if len(p.Rows) != NumRows {
		return fmt.Errorf("puzzle must have %d rows, got %d", NumRows, len(p.Rows))
	}
	seen := make(map[string]bool, NumRows)
	for i, row := range p.Rows {
		if row.YearStart != 0 && row.YearEnd != 0 && row.YearStart > row.YearEnd {
			return fmt.Errorf("row %d: year range %d-%d is inverted", i, row.YearStart, row.YearEnd)
		}
		key := row.Key()
		if seen[key] {
			return fmt.Errorf("row %d duplicates an earlier row", i)
		}
		seen[key] = true
	}
	return nil
}

// Pick is one submitted (player, season) answer.
type Pick struct {
	Player string `json:"player"`
	Season int    `json:"season"`
}

// Submission is the full answer sheet, one pick per row in row order.
type Submission struct {
	Picks []Pick `json:"picks"`
}
