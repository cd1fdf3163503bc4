package game

import (
	"crypto/md5"
	"encoding/hex"
	"log/slog"
	"math/rand"
	"sort"
	"strconv"
	"time"

	"github.com/statpadgame/statpad-data/internal/dataset"
)

// DateFormat is the canonical puzzle date key.
const DateFormat = "2006-01-02"

// OverrideSource supplies admin-authored puzzles that take precedence over
// generation. Get returns (nil, false, nil) when no override exists.
type OverrideSource interface {
	Get(date string) (*Puzzle, bool, error)
}

// GeneratorOptions tune feasibility checking.
type GeneratorOptions struct {
	// MinAnswers is the number of valid player-seasons a row must admit to
	// be considered playable.
	MinAnswers int
	// MaxRetries bounds how many candidate constraint sets are drawn per row
	// before falling back to a minimal always-feasible row.
	MaxRetries int
}

// DefaultGeneratorOptions matches production settings.
func DefaultGeneratorOptions() GeneratorOptions {
	return GeneratorOptions{MinAnswers: 12, MaxRetries: 8}
}

// Generator derives daily puzzles deterministically from dates.
type Generator struct {
	table     *dataset.Table
	overrides OverrideSource
	opts      GeneratorOptions
	logger    *slog.Logger
}

// NewGenerator creates a generator over the dataset. overrides may be nil.
func NewGenerator(table *dataset.Table, overrides OverrideSource, opts GeneratorOptions, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.MinAnswers < 1 {
		opts.MinAnswers = 1
	}
	if opts.MaxRetries < 1 {
		opts.MaxRetries = 1
	}
	return &Generator{table: table, overrides: overrides, opts: opts, logger: logger}
}

// DateSeed derives the deterministic RNG seed for a date: the first 8 hex
// digits of the MD5 of the ISO date string. Stable across releases: puzzle
// identity for a date must never change.
func DateSeed(date time.Time) int64 {
	sum := md5.Sum([]byte(date.Format(DateFormat)))
	seed, _ := strconv.ParseUint(hex.EncodeToString(sum[:])[:8], 16, 32)
	return int64(seed)
}

// Generate returns the puzzle for a date. An override for the date is
// returned verbatim; otherwise the puzzle is generated from the date seed,
// so repeated calls always yield the identical puzzle.
func (g *Generator) Generate(date time.Time) (*Puzzle, error) {
	dateStr := date.Format(DateFormat)

	if g.overrides != nil {
		p, ok, err := g.overrides.Get(dateStr)
		if err != nil {
			// A corrupt override store must not break puzzle delivery.
			g.logger.Error("override lookup failed, generating instead", "date", dateStr, "error", err)
		} else if ok {
			return p, nil
		}
	}

	rng := rand.New(rand.NewSource(DateSeed(date)))

	statIDs := StatIDs()
	stat := StatCategories[statIDs[rng.Intn(len(statIDs))]]

	rows := make([]Criteria, 0, NumRows)
	seen := make(map[string]bool, NumRows)
	usedTeams := make(map[string]bool)
	usedPositions := make(map[string]bool)

	for i := 0; i < NumRows; i++ {
		row, ok := g.generateRow(rng, stat, i, seen, usedTeams, usedPositions)
		if !ok {
			row = g.fallbackRow(rng, stat, i, seen)
			g.logger.Warn("row generation exhausted retries, using fallback",
				"date", dateStr, "row", i, "stat", stat.ID, "criteria", row.Display(),
				"error", ErrInfeasibleRow)
		}
		seen[row.Key()] = true
		rows = append(rows, row)
	}

	return &Puzzle{
		Date:         dateStr,
		StatCategory: stat.ID,
		StatDisplay:  stat.DisplayName,
		StatType:     stat.Type,
		StatDesc:     stat.Description,
		Rows:         rows,
	}, nil
}

// generateRow draws candidate constraint sets from the seed stream until one
// is feasible and not a duplicate, or retries are exhausted.
func (g *Generator) generateRow(rng *rand.Rand, stat StatCategory, rowIndex int, seen, usedTeams, usedPositions map[string]bool) (Criteria, bool) {
	for attempt := 0; attempt < g.opts.MaxRetries; attempt++ {
		c := g.drawCriteria(rng, stat, rowIndex, usedTeams, usedPositions)
		if seen[c.Key()] {
			continue
		}
		if g.feasible(stat, c) {
			// Commit dimension usage only for the accepted row.
			if c.Team != "" {
				usedTeams[c.Team] = true
			}
			if c.Position != "" {
				usedPositions[c.Position] = true
			}
			return c, true
		}
	}
	return Criteria{}, false
}

// drawCriteria builds one candidate row: always a year range, plus one of
// team / position / division / conference. The first row prefers a team
// constraint to keep the opening pick approachable.
func (g *Generator) drawCriteria(rng *rand.Rand, stat StatCategory, rowIndex int, usedTeams, usedPositions map[string]bool) Criteria {
	minYear, maxYear := g.table.YearBounds()

	spans := []int{5, 10, 15, 20}
	span := spans[rng.Intn(len(spans))]
	if span > maxYear-minYear {
		span = maxYear - minYear
	}
	start := minYear + rng.Intn(maxYear-minYear-span+1)

	c := Criteria{YearStart: start, YearEnd: start + span}

	var availTeams []string
	for _, abbr := range teamAbbrs() {
		if !usedTeams[abbr] {
			availTeams = append(availTeams, abbr)
		}
	}
	var availPositions []string
	if len(stat.EligiblePositions) > 1 {
		for _, p := range stat.EligiblePositions {
			if !usedPositions[p] {
				availPositions = append(availPositions, p)
			}
		}
	}

	var options []string
	if len(availTeams) > 0 {
		options = append(options, "team")
	}
	if len(availPositions) > 0 {
		options = append(options, "position")
	}
	options = append(options, "division", "conference")

	choice := options[rng.Intn(len(options))]
	if rowIndex == 0 && len(availTeams) > 0 {
		choice = "team"
	}

	switch choice {
	case "team":
		c.Team = availTeams[rng.Intn(len(availTeams))]
	case "position":
		c.Position = availPositions[rng.Intn(len(availPositions))]
	case "division":
		c.Division = Divisions[rng.Intn(len(Divisions))]
	case "conference":
		c.Conference = Conferences[rng.Intn(len(Conferences))]
	}
	return c
}

// fallbackRow builds a minimal row that is always playable: the widest year
// range, optionally narrowed to an eligible position when that still leaves
// enough answers. Uniqueness against earlier rows is kept by shifting the
// range start per row index as a last resort.
func (g *Generator) fallbackRow(rng *rand.Rand, stat StatCategory, rowIndex int, seen map[string]bool) Criteria {
	minYear, maxYear := g.table.YearBounds()

	positions := append([]string(nil), stat.EligiblePositions...)
	rng.Shuffle(len(positions), func(i, j int) { positions[i], positions[j] = positions[j], positions[i] })

	for _, pos := range positions {
		c := Criteria{YearStart: minYear, YearEnd: maxYear, Position: pos}
		if !seen[c.Key()] && g.feasible(stat, c) {
			return c
		}
	}
	c := Criteria{YearStart: minYear, YearEnd: maxYear}
	for seen[c.Key()] && c.YearStart < maxYear {
		c.YearStart++
	}
	return c
}

func (g *Generator) feasible(stat StatCategory, c Criteria) bool {
	return len(g.table.Query(c.Constraints(stat.ID))) >= g.opts.MinAnswers
}

// teamAbbrs returns registry abbreviations in deterministic order so the
// seed stream is reproducible.
func teamAbbrs() []string {
	abbrs := make([]string, 0, len(Teams))
	for abbr := range Teams {
		abbrs = append(abbrs, abbr)
	}
	sort.Strings(abbrs)
	return abbrs
}
