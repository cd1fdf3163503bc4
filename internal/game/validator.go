package game

import (
	"fmt"
	"sort"
	"strings"

	"github.com/statpadgame/statpad-data/internal/dataset"
)

// PickResult is the validated player-season behind an accepted pick.
type PickResult struct {
	Player    string  `json:"player"`
	PlayerID  string  `json:"player_id,omitempty"`
	Season    int     `json:"season"`
	Team      string  `json:"team"`
	Position  string  `json:"position"`
	StatValue float64 `json:"stat_value"`
}

// ValidatePick checks one (player, season) pick against a row's criteria and
// the puzzle's stat category. Pure over the table: no side effects.
//
// Checks run in order: the player-season must exist, the stat must be
// defined (positive) for an eligible position, and every set constraint must
// hold. Failures are always *InvalidPickError with Row = -1; the scorer
// fills in the row index.
func ValidatePick(table *dataset.Table, stat StatCategory, row Criteria, pick Pick) (PickResult, error) {
	name := strings.TrimSpace(pick.Player)
	matches := table.Lookup(name, pick.Season)
	if len(matches) == 0 {
		return PickResult{}, &InvalidPickError{
			Reason: ReasonNotFound, Row: -1,
			Detail: fmt.Sprintf("player %q not found for season %d", name, pick.Season),
		}
	}

	// A name may match multiple rows (substring hits, position splits).
	// Prefer the row with the highest value of the puzzle stat.
	sort.SliceStable(matches, func(i, j int) bool {
		vi, _ := matches[i].Stat(stat.ID)
		vj, _ := matches[j].Stat(stat.ID)
		return vi > vj
	})
	r := matches[0]

	v, ok := r.Stat(stat.ID)
	if !ok || v <= 0 {
		return PickResult{}, &InvalidPickError{
			Reason: ReasonStatNotEligible, Row: -1,
			Detail: fmt.Sprintf("%s has no %s in %d", r.Player, stat.Description, pick.Season),
		}
	}
	if !stat.EligiblePosition(r.Position) {
		return PickResult{}, &InvalidPickError{
			Reason: ReasonStatNotEligible, Row: -1,
			Detail: fmt.Sprintf("%s (%s) is not eligible for %s", r.Player, r.Position, stat.Description),
		}
	}

	if err := checkConstraints(row, r, pick.Season); err != nil {
		return PickResult{}, err
	}

	return PickResult{
		Player:    r.Player,
		PlayerID:  r.PlayerID,
		Season:    r.Season,
		Team:      r.Team,
		Position:  r.Position,
		StatValue: v,
	}, nil
}

func checkConstraints(row Criteria, r dataset.Row, season int) error {
	violation := func(format string, args ...any) error {
		return &InvalidPickError{
			Reason: ReasonConstraintViolation, Row: -1,
			Detail: fmt.Sprintf(format, args...),
		}
	}

	if row.YearStart != 0 && season < row.YearStart {
		return violation("season %d is before %d", season, row.YearStart)
	}
	if row.YearEnd != 0 && season > row.YearEnd {
		return violation("season %d is after %d", season, row.YearEnd)
	}

	if row.Team != "" {
		if !containsFold(TeamVariants(row.Team), r.Team) {
			name := row.Team
			if t, ok := Teams[row.Team]; ok {
				name = t.Name
			}
			return violation("%s was not on the %s in %d", r.Player, name, season)
		}
	}

	if row.Position != "" {
		if !containsFold(PositionsFor(row.Position), r.Position) {
			return violation("%s is not a %s", r.Player, row.Position)
		}
	}

	if row.Division != "" && TeamDivision(r.Team) != row.Division {
		return violation("%s's team was not in the %s in %d", r.Player, row.Division, season)
	}

	if row.Conference != "" && TeamConference(r.Team) != row.Conference {
		return violation("%s's team was not in the %s in %d", r.Player, row.Conference, season)
	}

	return nil
}

func containsFold(set []string, s string) bool {
	for _, v := range set {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}
