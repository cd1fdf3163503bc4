// Command statpad is the NFL StatPad operations CLI.
//
// Usage:
//
//	statpad build --from 1999 --to 2024 --out data/nfl_player_stats.csv
//	statpad puzzle --date 2026-01-15
//	statpad leaders --date 2026-01-15 --row 2
//	statpad override set --date 2026-01-15 --file puzzle.json
//	statpad override list
//	statpad override delete --date 2026-01-15
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/statpadgame/statpad-data/internal/config"
	"github.com/statpadgame/statpad-data/internal/dataset"
	"github.com/statpadgame/statpad-data/internal/game"
	"github.com/statpadgame/statpad-data/internal/ingest"
	"github.com/statpadgame/statpad-data/internal/override"
	"github.com/statpadgame/statpad-data/internal/provider"
)

var logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	root := &cobra.Command{
		Use:   "statpad",
		Short: "NFL StatPad operations CLI",
	}

	root.AddCommand(buildCmd())
	root.AddCommand(puzzleCmd())
	root.AddCommand(leadersCmd())
	root.AddCommand(overrideCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// --------------------------------------------------------------------------
// build command
// --------------------------------------------------------------------------

func buildCmd() *cobra.Command {
	var from, to int
	var out string
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the player-season dataset from the stat feed",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(func(ctx context.Context, cfg *config.Config) error {
				if to == 0 {
					to = time.Now().Year() - 1
				}
				if from > to {
					return fmt.Errorf("--from %d is after --to %d", from, to)
				}
				if out == "" {
					out = cfg.DatasetPath
				}
				client := provider.NewClient(cfg.ProviderBaseURL, cfg.ProviderRPM, logger)
				start := time.Now()
				result := ingest.Build(ctx, client, from, to, out, logger)
				logger.Info("Build finished",
					"duration", time.Since(start).Round(time.Second),
					"summary", result.Summary())
				for _, e := range result.Errors {
					logger.Error("build error", "error", e)
				}
				if result.Rows == 0 {
					return fmt.Errorf("build produced no rows")
				}
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&from, "from", 1999, "First season to fetch")
	cmd.Flags().IntVar(&to, "to", 0, "Last season to fetch (default: last completed season)")
	cmd.Flags().StringVar(&out, "out", "", "Output CSV path (default: DATASET_PATH)")
	return cmd
}

// --------------------------------------------------------------------------
// puzzle command
// --------------------------------------------------------------------------

func puzzleCmd() *cobra.Command {
	var dateStr string
	cmd := &cobra.Command{
		Use:   "puzzle",
		Short: "Preview the puzzle for a date",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(func(ctx context.Context, cfg *config.Config) error {
				date, err := resolveDate(dateStr, cfg)
				if err != nil {
					return err
				}
				table, err := dataset.LoadCSV(cfg.DatasetPath)
				if err != nil {
					return fmt.Errorf("load dataset: %w", err)
				}
				overrides := override.NewStore(cfg.OverridePath)
				gen := game.NewGenerator(table, overrides, game.GeneratorOptions{
					MinAnswers: cfg.MinAnswers,
					MaxRetries: cfg.MaxRetries,
				}, logger)

				puzzle, err := gen.Generate(date)
				if err != nil {
					return fmt.Errorf("generate puzzle: %w", err)
				}

				fmt.Printf("Date:  %s\nStat:  %s (%s)\n\n", puzzle.Date, puzzle.StatDisplay, puzzle.StatCategory)
				stat := game.StatCategories[puzzle.StatCategory]
				for i, row := range puzzle.Rows {
					answers := len(table.Query(row.Constraints(stat.ID)))
					fmt.Printf("Row %d: %s (%d valid answers)\n", i+1, row.Display(), answers)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&dateStr, "date", "", "Puzzle date YYYY-MM-DD (default: today)")
	return cmd
}

// --------------------------------------------------------------------------
// leaders command
// --------------------------------------------------------------------------

func leadersCmd() *cobra.Command {
	var dateStr string
	var row, top int
	cmd := &cobra.Command{
		Use:   "leaders",
		Short: "Show the best answers for a puzzle row",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(func(ctx context.Context, cfg *config.Config) error {
				date, err := resolveDate(dateStr, cfg)
				if err != nil {
					return err
				}
				if row < 0 || row >= game.NumRows {
					return fmt.Errorf("--row must be between 0 and %d", game.NumRows-1)
				}
				table, err := dataset.LoadCSV(cfg.DatasetPath)
				if err != nil {
					return fmt.Errorf("load dataset: %w", err)
				}
				overrides := override.NewStore(cfg.OverridePath)
				gen := game.NewGenerator(table, overrides, game.GeneratorOptions{
					MinAnswers: cfg.MinAnswers,
					MaxRetries: cfg.MaxRetries,
				}, logger)

				puzzle, err := gen.Generate(date)
				if err != nil {
					return fmt.Errorf("generate puzzle: %w", err)
				}
				stat := game.StatCategories[puzzle.StatCategory]
				criteria := puzzle.Rows[row]

				fmt.Printf("Row %d: %s\nStat:  %s\n\n", row+1, criteria.Display(), stat.DisplayName)
				for i, leader := range game.RowLeaders(table, stat, criteria, top) {
					fmt.Printf("%2d. %-28s %d %s  %.1f\n", i+1, leader.Player, leader.Season, leader.Team, leader.StatValue)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&dateStr, "date", "", "Puzzle date YYYY-MM-DD (default: today)")
	cmd.Flags().IntVar(&row, "row", 0, "Row index (0-4)")
	cmd.Flags().IntVar(&top, "top", 10, "Number of leaders to show")
	return cmd
}

// --------------------------------------------------------------------------
// override command
// --------------------------------------------------------------------------

func overrideCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "override",
		Short: "Manage puzzle overrides",
	}
	cmd.AddCommand(overrideSetCmd())
	cmd.AddCommand(overrideListCmd())
	cmd.AddCommand(overrideDeleteCmd())
	return cmd
}

func overrideSetCmd() *cobra.Command {
	var dateStr, file string
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Store a puzzle override from a JSON file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if dateStr == "" || file == "" {
				return fmt.Errorf("--date and --file are required")
			}
			return run(func(ctx context.Context, cfg *config.Config) error {
				if _, err := time.Parse(game.DateFormat, dateStr); err != nil {
					return fmt.Errorf("invalid --date: %w", err)
				}
				raw, err := os.ReadFile(file)
				if err != nil {
					return fmt.Errorf("read puzzle file: %w", err)
				}
				var puzzle game.Puzzle
				if err := json.Unmarshal(raw, &puzzle); err != nil {
					return fmt.Errorf("parse puzzle file: %w", err)
				}

				// Warn about rows with no valid answers before committing.
				table, err := dataset.LoadCSV(cfg.DatasetPath)
				if err != nil {
					return fmt.Errorf("load dataset: %w", err)
				}
				if stat, ok := game.StatCategories[puzzle.StatCategory]; ok {
					for i, row := range puzzle.Rows {
						if n := len(table.Query(row.Constraints(stat.ID))); n < cfg.MinAnswers {
							logger.Warn("row below answer threshold", "row", i, "answers", n, "min", cfg.MinAnswers)
						}
					}
				}

				store := override.NewStore(cfg.OverridePath)
				if err := store.Set(dateStr, &puzzle); err != nil {
					return fmt.Errorf("store override: %w", err)
				}
				logger.Info("Override saved", "date", dateStr, "stat", puzzle.StatCategory)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&dateStr, "date", "", "Puzzle date YYYY-MM-DD")
	cmd.Flags().StringVar(&file, "file", "", "Path to the puzzle JSON file")
	return cmd
}

func overrideListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored puzzle overrides",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(func(ctx context.Context, cfg *config.Config) error {
				store := override.NewStore(cfg.OverridePath)
				all, err := store.List()
				if err != nil {
					return fmt.Errorf("list overrides: %w", err)
				}
				if len(all) == 0 {
					fmt.Println("No overrides stored.")
					return nil
				}
				for _, p := range all {
					fmt.Printf("%s  %s  (%d rows)\n", p.Date, p.StatCategory, len(p.Rows))
				}
				return nil
			})
		},
	}
}

func overrideDeleteCmd() *cobra.Command {
	var dateStr string
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete the override for a date",
		RunE: func(cmd *cobra.Command, args []string) error {
			if dateStr == "" {
				return fmt.Errorf("--date is required")
			}
			return run(func(ctx context.Context, cfg *config.Config) error {
				store := override.NewStore(cfg.OverridePath)
				if err := store.Delete(dateStr); err != nil {
					return fmt.Errorf("delete override: %w", err)
				}
				logger.Info("Override deleted", "date", dateStr)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&dateStr, "date", "", "Puzzle date YYYY-MM-DD")
	return cmd
}

// --------------------------------------------------------------------------
// Shared setup
// --------------------------------------------------------------------------

// resolveDate parses the --date flag, defaulting to today in the reset
// timezone.
func resolveDate(dateStr string, cfg *config.Config) (time.Time, error) {
	if dateStr == "" {
		now := time.Now().In(cfg.ResetLocation())
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	date, err := time.Parse(game.DateFormat, dateStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --date: %w", err)
	}
	return date, nil
}

// run handles config loading and context cancellation.
func run(fn func(ctx context.Context, cfg *config.Config) error) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	return fn(ctx, cfg)
}
