// Package ingest builds the flat player-season dataset file from the
// upstream stat feed: it merges category frames per season, normalizes
// teams and names, derives fantasy points, and writes the CSV the API
// loads at startup.
package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/statpadgame/statpad-data/internal/dataset"
	"github.com/statpadgame/statpad-data/internal/game"
	"github.com/statpadgame/statpad-data/internal/provider"
)

// statColumns is the column order of the output file.
var statColumns = []string{
	"completions", "attempts", "passing_yards", "passing_tds", "interceptions", "passer_rating",
	"rushing_yards", "rushing_tds", "rushing_attempts",
	"receptions", "receiving_yards", "receiving_tds", "targets",
	"sacks", "tackles_total", "forced_fumbles", "interceptions_def",
	"fantasy_points", "fantasy_points_ppr",
}

// defenseRenames separates defense frame columns whose feed names collide
// with offense ones: caught interceptions must not land in the thrown
// interceptions column.
var defenseRenames = map[string]string{
	"interceptions": "interceptions_def",
}

// BuildResult accumulates counts and non-fatal errors across the build.
type BuildResult struct {
	Seasons int
	Rows    int
	Errors  []string
}

// AddErrorf records a non-fatal error.
func (r *BuildResult) AddErrorf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// Summary returns a one-line human-readable result.
func (r *BuildResult) Summary() string {
	return fmt.Sprintf("seasons=%d rows=%d errors=%d", r.Seasons, r.Rows, len(r.Errors))
}

// Build fetches every season in [from, to], merges the category frames into
// unified player-season rows, and writes the dataset file.
func Build(ctx context.Context, client *provider.Client, from, to int, outPath string, logger *slog.Logger) BuildResult {
	var result BuildResult
	var all []dataset.Row

	for season := from; season <= to; season++ {
		merged, err := buildSeason(ctx, client, season)
		if err != nil {
			result.AddErrorf("season %d: %v", season, err)
			continue
		}
		all = append(all, merged...)
		result.Seasons++
		logger.Info("season merged", "season", season, "rows", len(merged))
	}

	if len(all) == 0 {
		result.AddErrorf("no rows fetched for %d-%d", from, to)
		return result
	}

	sort.SliceStable(all, func(i, j int) bool {
		if all[i].Season != all[j].Season {
			return all[i].Season < all[j].Season
		}
		return all[i].Player < all[j].Player
	})

	if err := writeDataset(outPath, all); err != nil {
		result.AddErrorf("write dataset: %v", err)
		return result
	}
	result.Rows = len(all)
	logger.Info("dataset written", "path", outPath, "rows", len(all))
	return result
}

// buildSeason fetches all category frames for one season and merges them by
// (player, team): a quarterback with rushing stats ends up in one row.
func buildSeason(ctx context.Context, client *provider.Client, season int) ([]dataset.Row, error) {
	type key struct {
		player string
		team   string
	}
	merged := make(map[key]*dataset.Row)
	var order []key

	for _, category := range provider.Categories {
		frame, err := client.FetchSeason(ctx, category, season)
		if err != nil {
			return nil, err
		}
		for _, r := range frame {
			r.Player = cleanPlayerName(r.Player)
			r.Team = game.NormalizeTeam(r.Team)
			if r.Player == "" || r.Team == "" {
				continue
			}
			k := key{strings.ToLower(r.Player), r.Team}
			dst, ok := merged[k]
			if !ok {
				row := dataset.Row{
					Player:   r.Player,
					PlayerID: r.PlayerID,
					Season:   season,
					Team:     r.Team,
					Position: r.Position,
					Stats:    make(map[string]float64),
				}
				merged[k] = &row
				order = append(order, k)
				dst = &row
			}
			if dst.Position == "" {
				dst.Position = r.Position
			}
			for stat, v := range r.Stats {
				if category == provider.CategoryDefense {
					if renamed, ok := defenseRenames[stat]; ok {
						stat = renamed
					}
				}
				dst.Stats[stat] = v
			}
		}
	}

	out := make([]dataset.Row, 0, len(order))
	for _, k := range order {
		row := merged[k]
		addFantasyPoints(row)
		out = append(out, *row)
	}
	return out, nil
}

// addFantasyPoints derives standard and PPR fantasy totals from the merged
// stat line. Standard: 0.04/pass yd, 4/pass TD, -2/INT, 0.1/rush+rec yd,
// 6/rush+rec TD. PPR adds 1 per reception.
func addFantasyPoints(r *dataset.Row) {
	pts := r.Stats["passing_yards"]*0.04 +
		r.Stats["passing_tds"]*4 -
		r.Stats["interceptions"]*2 +
		r.Stats["rushing_yards"]*0.1 +
		r.Stats["rushing_tds"]*6 +
		r.Stats["receiving_yards"]*0.1 +
		r.Stats["receiving_tds"]*6

	ppr := pts + r.Stats["receptions"]

	// Only players with offensive production get fantasy columns; a pure
	// defender keeps them null.
	if pts != 0 || ppr != 0 {
		r.Stats["fantasy_points"] = round1(pts)
		r.Stats["fantasy_points_ppr"] = round1(ppr)
	}
}

// cleanPlayerName strips the award markers some sources append ("*", "+").
func cleanPlayerName(name string) string {
	return strings.TrimSpace(strings.TrimRight(strings.TrimSpace(name), "*+"))
}

// writeDataset writes rows atomically: temp file then rename.
func writeDataset(path string, rows []dataset.Row) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".dataset-*.csv")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if err := dataset.WriteCSV(tmp, rows, statColumns); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace dataset: %w", err)
	}
	return nil
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
