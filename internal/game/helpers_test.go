package game

import (
	"fmt"

	"github.com/statpadgame/statpad-data/internal/dataset"
)

// newTestTable builds a synthetic dataset rich enough that every stat
// category has playable answers at every position: one QB, RB, WR, LB, and
// CB per season across a spread of teams.
func newTestTable(firstSeason, lastSeason int) *dataset.Table {
	teams := []string{"KC", "SF", "DAL", "BUF", "GB", "MIA", "PHI", "DET"}
	var rows []dataset.Row

	for season := firstSeason; season <= lastSeason; season++ {
		base := float64(season - firstSeason)
		team := func(i int) string { return teams[(season+i)%len(teams)] }

		rows = append(rows,
			dataset.Row{
				Player: fmt.Sprintf("Quin Passer %d", season), Season: season,
				Team: team(0), Position: "QB",
				Stats: map[string]float64{
					"passing_yards": 3000 + base*100, "passing_tds": 20 + base,
					"completions": 300 + base*5, "passer_rating": 85 + base,
					"rushing_yards": 150 + base, "rushing_tds": 2,
					"rushing_attempts": 40, "fantasy_points": 200 + base*2,
					"fantasy_points_ppr": 200 + base*2,
				},
			},
			dataset.Row{
				Player: fmt.Sprintf("Rex Rusher %d", season), Season: season,
				Team: team(1), Position: "RB",
				Stats: map[string]float64{
					"rushing_yards": 1000 + base*20, "rushing_tds": 8 + base/2,
					"rushing_attempts": 250, "receptions": 40,
					"receiving_yards": 300, "receiving_tds": 1,
					"fantasy_points": 180 + base, "fantasy_points_ppr": 220 + base,
				},
			},
			dataset.Row{
				Player: fmt.Sprintf("Wes Catcher %d", season), Season: season,
				Team: team(2), Position: "WR",
				Stats: map[string]float64{
					"receptions": 80 + base, "receiving_yards": 1100 + base*15,
					"receiving_tds": 7, "fantasy_points": 170 + base,
					"fantasy_points_ppr": 250 + base,
				},
			},
			dataset.Row{
				Player: fmt.Sprintf("Lou Backer %d", season), Season: season,
				Team: team(3), Position: "LB",
				Stats: map[string]float64{
					"sacks": 8 + base/4, "tackles_total": 110 + base,
					"forced_fumbles": 2, "interceptions_def": 1,
				},
			},
			dataset.Row{
				Player: fmt.Sprintf("Cory Corner %d", season), Season: season,
				Team: team(4), Position: "CB",
				Stats: map[string]float64{
					"interceptions_def": 4 + base/4, "tackles_total": 60 + base,
					"forced_fumbles": 1,
				},
			},
		)
	}
	return dataset.New(rows)
}
