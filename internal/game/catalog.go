// Package game implements the StatPad daily puzzle: the stat catalog, the
// deterministic puzzle generator, pick validation, and scoring.
package game

import (
	"fmt"
	"sort"
)

// Stat type groups, used for display and year-range tuning.
const (
	TypePassing   = "PASSING"
	TypeRushing   = "RUSHING"
	TypeReceiving = "RECEIVING"
	TypeDefense   = "DEFENSE"
	TypeFantasy   = "FANTASY"
)

// StatCategory describes one stat a puzzle can ask players to maximize.
type StatCategory struct {
	ID                string   `json:"id"`
	DisplayName       string   `json:"display_name"`
	Type              string   `json:"type"`
	EligiblePositions []string `json:"eligible_positions"`
	Description       string   `json:"description"`
}

// StatCategories is the static catalog keyed by stat id. Column names match
// the dataset file.
var StatCategories = map[string]StatCategory{
	"passing_yards": {
		ID: "passing_yards", DisplayName: "PASS YDS", Type: TypePassing,
		EligiblePositions: []string{"QB"},
		Description:       "Passing Yards",
	},
	"passing_tds": {
		ID: "passing_tds", DisplayName: "PASS TD", Type: TypePassing,
		EligiblePositions: []string{"QB"},
		Description:       "Passing Touchdowns",
	},
	"completions": {
		ID: "completions", DisplayName: "COMP", Type: TypePassing,
		EligiblePositions: []string{"QB"},
		Description:       "Completions",
	},
	"passer_rating": {
		ID: "passer_rating", DisplayName: "RTG", Type: TypePassing,
		EligiblePositions: []string{"QB"},
		Description:       "Passer Rating",
	},
	"rushing_yards": {
		ID: "rushing_yards", DisplayName: "RUSH YDS", Type: TypeRushing,
		EligiblePositions: []string{"QB", "RB", "WR", "FB"},
		Description:       "Rushing Yards",
	},
	"rushing_tds": {
		ID: "rushing_tds", DisplayName: "RUSH TD", Type: TypeRushing,
		EligiblePositions: []string{"QB", "RB", "WR", "FB"},
		Description:       "Rushing Touchdowns",
	},
	"rushing_attempts": {
		ID: "rushing_attempts", DisplayName: "RUSH ATT", Type: TypeRushing,
		EligiblePositions: []string{"QB", "RB", "WR", "FB"},
		Description:       "Rushing Attempts",
	},
	"receiving_yards": {
		ID: "receiving_yards", DisplayName: "REC YDS", Type: TypeReceiving,
		EligiblePositions: []string{"WR", "TE", "RB", "FB"},
		Description:       "Receiving Yards",
	},
	"receiving_tds": {
		ID: "receiving_tds", DisplayName: "REC TD", Type: TypeReceiving,
		EligiblePositions: []string{"WR", "TE", "RB", "FB"},
		Description:       "Receiving Touchdowns",
	},
	"receptions": {
		ID: "receptions", DisplayName: "REC", Type: TypeReceiving,
		EligiblePositions: []string{"WR", "TE", "RB", "FB"},
		Description:       "Receptions",
	},
	"sacks": {
		ID: "sacks", DisplayName: "SACKS", Type: TypeDefense,
		EligiblePositions: []string{"DE", "DT", "LB", "OLB", "ILB", "MLB", "EDGE"},
		Description:       "Sacks",
	},
	"interceptions_def": {
		ID: "interceptions_def", DisplayName: "INT", Type: TypeDefense,
		EligiblePositions: []string{"CB", "S", "FS", "SS", "DB", "LB", "OLB", "ILB", "MLB"},
		Description:       "Interceptions",
	},
	"tackles_total": {
		ID: "tackles_total", DisplayName: "TACKLES", Type: TypeDefense,
		EligiblePositions: []string{"CB", "S", "FS", "SS", "DB", "LB", "OLB", "ILB", "MLB", "DE", "DT"},
		Description:       "Total Tackles",
	},
	"forced_fumbles": {
		ID: "forced_fumbles", DisplayName: "FF", Type: TypeDefense,
		EligiblePositions: []string{"CB", "S", "FS", "SS", "DB", "LB", "OLB", "ILB", "MLB", "DE", "DT"},
		Description:       "Forced Fumbles",
	},
	"fantasy_points": {
		ID: "fantasy_points", DisplayName: "FPTS", Type: TypeFantasy,
		EligiblePositions: []string{"QB", "RB", "WR", "TE", "FB"},
		Description:       "Fantasy Points (Standard)",
	},
	"fantasy_points_ppr": {
		ID: "fantasy_points_ppr", DisplayName: "FPTS PPR", Type: TypeFantasy,
		EligiblePositions: []string{"QB", "RB", "WR", "TE", "FB"},
		Description:       "Fantasy Points (PPR)",
	},
}

// PositionGroups expands a criteria position to the raw position codes the
// dataset may carry for it.
var PositionGroups = map[string][]string{
	"QB": {"QB"},
	"RB": {"RB", "FB"},
	"WR": {"WR"},
	"TE": {"TE"},
	"DL": {"DE", "DT", "NT"},
	"LB": {"LB", "OLB", "ILB", "MLB", "EDGE"},
	"DB": {"CB", "S", "FS", "SS", "DB"},
	"K":  {"K"},
	"P":  {"P"},
}

// PositionsFor returns the raw position codes a criteria position accepts.
// Unknown positions match only themselves.
func PositionsFor(position string) []string {
	if group, ok := PositionGroups[position]; ok {
		return group
	}
	return []string{position}
}

// StatIDs returns catalog ids in stable sorted order.
func StatIDs() []string {
	ids := make([]string, 0, len(StatCategories))
	for id := range StatCategories {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// EligiblePosition reports whether a raw dataset position code may record
// the given stat.
func (sc StatCategory) EligiblePosition(position string) bool {
	for _, p := range sc.EligiblePositions {
		if p == position {
			return true
		}
	}
	return false
}

// ValidateCatalog checks the static catalog for completeness. Called once at
// startup; a failure is a programming error, not an operational one.
func ValidateCatalog() error {
	if len(StatCategories) == 0 {
		return fmt.Errorf("stat catalog is empty")
	}
	for id, sc := range StatCategories {
		if sc.ID != id {
			return fmt.Errorf("stat %q: id field %q does not match key", id, sc.ID)
		}
		if sc.DisplayName == "" {
			return fmt.Errorf("stat %q: missing display name", id)
		}
		if sc.Type == "" {
			return fmt.Errorf("stat %q: missing type", id)
		}
		if sc.Description == "" {
			return fmt.Errorf("stat %q: missing description", id)
		}
		if len(sc.EligiblePositions) == 0 {
			return fmt.Errorf("stat %q: no eligible positions", id)
		}
	}
	for abbr, t := range Teams {
		if t.Name == "" || t.Division == "" {
			return fmt.Errorf("team %q: incomplete registry entry", abbr)
		}
	}
	return nil
}
