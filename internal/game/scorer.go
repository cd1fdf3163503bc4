package game

import (
	"fmt"
	"math"
	"strings"

	"github.com/statpadgame/statpad-data/internal/dataset"
)

// RowScore is the scored outcome of one accepted pick.
type RowScore struct {
	PickResult
	// Percentile is the rank percentile of the pick among all valid
	// player-seasons for the row (share of valid values <= the pick's).
	Percentile float64 `json:"percentile"`
	// Rank is the pick's position among valid values, 1 = best.
	Rank int `json:"rank"`
	// TotalValid counts all valid player-seasons for the row.
	TotalValid int `json:"total_valid"`
	// BestValue is the per-row maximum achievable stat value.
	BestValue float64 `json:"best_value"`
	Tier      Tier    `json:"tier"`
}

// ScoreResult is the full outcome of a scored submission.
type ScoreResult struct {
	Date     string     `json:"date"`
	Stat     string     `json:"stat_category"`
	Total    float64    `json:"total"`
	PerRow   []RowScore `json:"per_row"`
	MaxScore float64    `json:"max_score"`
	// Percentile is ratio-to-maximum: Total / MaxScore as a percentage,
	// clamped to [0,100]. It is not a rank among recorded submissions.
	Percentile float64 `json:"percentile"`
	Tier       Tier    `json:"tier"`
	// ShareLine is the five tier symbols in row order.
	ShareLine string `json:"share_line"`
}

// LeaderEntry is one line of a row leaderboard.
type LeaderEntry struct {
	Rank      int     `json:"rank"`
	Player    string  `json:"player"`
	Season    int     `json:"season"`
	Team      string  `json:"team"`
	Position  string  `json:"position"`
	StatValue float64 `json:"stat_value"`
}

// Score validates and scores a full submission against a puzzle. Any invalid
// pick aborts scoring; the returned error is an *InvalidPickError carrying
// the failing row index. A submission is never partially scored.
func Score(table *dataset.Table, puzzle *Puzzle, sub Submission) (*ScoreResult, error) {
	stat, ok := StatCategories[puzzle.StatCategory]
	if !ok {
		return nil, fmt.Errorf("puzzle has unknown stat category %q", puzzle.StatCategory)
	}
	if len(sub.Picks) != len(puzzle.Rows) {
		return nil, fmt.Errorf("submission has %d picks, puzzle has %d rows", len(sub.Picks), len(puzzle.Rows))
	}

	result := &ScoreResult{
		Date:   puzzle.Date,
		Stat:   stat.ID,
		PerRow: make([]RowScore, 0, len(puzzle.Rows)),
	}

	var symbols strings.Builder
	for i, row := range puzzle.Rows {
		pr, err := ValidatePick(table, stat, row, sub.Picks[i])
		if err != nil {
			if ipe, ok := AsInvalidPick(err); ok {
				ipe.Row = i
			}
			return nil, err
		}

		rs := scoreRow(table, stat, row, pr)
		result.PerRow = append(result.PerRow, rs)
		result.Total += rs.StatValue
		result.MaxScore += rs.BestValue
		symbols.WriteString(rs.Tier.Symbol())
	}

	if result.MaxScore > 0 {
		result.Percentile = round1(math.Min(100, math.Max(0, result.Total/result.MaxScore*100)))
	}
	result.Tier = TierFor(result.Percentile)
	result.ShareLine = symbols.String()
	return result, nil
}

// scoreRow ranks an accepted pick against every valid player-season for the
// row's criteria.
func scoreRow(table *dataset.Table, stat StatCategory, row Criteria, pr PickResult) RowScore {
	rs := RowScore{PickResult: pr}

	valid := table.Query(row.Constraints(stat.ID))
	if len(valid) == 0 {
		// The pick itself proved the row playable; rank it alone.
		rs.Percentile, rs.Rank, rs.TotalValid = 100, 1, 1
		rs.BestValue = pr.StatValue
		rs.Tier = TierDiamond
		return rs
	}

	atOrBelow, above := 0, 0
	for _, r := range valid {
		v, _ := r.Stat(stat.ID)
		if v <= pr.StatValue {
			atOrBelow++
		} else {
			above++
		}
	}

	rs.TotalValid = len(valid)
	rs.Percentile = round1(float64(atOrBelow) / float64(len(valid)) * 100)
	rs.Rank = above + 1
	rs.BestValue, _ = valid[0].Stat(stat.ID)
	rs.Tier = TierFor(rs.Percentile)
	return rs
}

// RowLeaders returns the top n valid player-seasons for one row, the basis
// of the per-row leaderboard display.
func RowLeaders(table *dataset.Table, stat StatCategory, row Criteria, n int) []LeaderEntry {
	valid := table.Query(row.Constraints(stat.ID))
	if n > len(valid) {
		n = len(valid)
	}
	out := make([]LeaderEntry, 0, n)
	for i := 0; i < n; i++ {
		v, _ := valid[i].Stat(stat.ID)
		out = append(out, LeaderEntry{
			Rank:      i + 1,
			Player:    valid[i].Player,
			Season:    valid[i].Season,
			Team:      valid[i].Team,
			Position:  valid[i].Position,
			StatValue: v,
		})
	}
	return out
}

// RowBest returns the per-row maximum achievable stat value, or 0 when the
// row has no valid answers.
func RowBest(table *dataset.Table, stat StatCategory, row Criteria) float64 {
	valid := table.Query(row.Constraints(stat.ID))
	if len(valid) == 0 {
		return 0
	}
	v, _ := valid[0].Stat(stat.ID)
	return v
}

// ShareText renders the shareable result block: date, category, tier line,
// and total.
func ShareText(puzzle *Puzzle, result *ScoreResult, appURL string) string {
	score := fmt.Sprintf("%.1f", result.Total)
	if result.Total == math.Trunc(result.Total) {
		score = fmt.Sprintf("%.0f", result.Total)
	}
	return fmt.Sprintf("🏈 NFL StatPad - %s\nCategory: %s\n\n%s\n\nScore: %s pts\nPlay at: %s",
		puzzle.Date, puzzle.StatDisplay, result.ShareLine, score, appURL)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
