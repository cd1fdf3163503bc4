// Package schedule runs the daily reset job: it pre-generates the new day's
// puzzle and row leaderboards so the first players after midnight hit a warm
// cache, and sweeps expired cache entries hourly.
package schedule

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/statpadgame/statpad-data/internal/cache"
	"github.com/statpadgame/statpad-data/internal/config"
	"github.com/statpadgame/statpad-data/internal/dataset"
	"github.com/statpadgame/statpad-data/internal/game"
)

// Start launches the cron scheduler in the reset timezone and warms the
// cache once immediately. Blocks until ctx is cancelled; intended to be
// called with `go`.
func Start(ctx context.Context, table *dataset.Table, generator *game.Generator, appCache *cache.Cache, cfg *config.Config, logger *slog.Logger) {
	loc := cfg.ResetLocation()
	c := cron.New(cron.WithLocation(loc))

	// Midnight in the reset timezone: the puzzle day rolls over.
	_, err := c.AddFunc("0 0 * * *", func() {
		warmDay(table, generator, appCache, time.Now().In(loc), loc, logger)
	})
	if err != nil {
		logger.Error("failed to register daily warm job", "error", err)
		return
	}

	_, err = c.AddFunc("30 * * * *", func() {
		appCache.Sweep()
	})
	if err != nil {
		logger.Error("failed to register cache sweep job", "error", err)
		return
	}

	c.Start()
	logger.Info("Daily schedule started", "timezone", cfg.ResetTimezone)

	// Warm today's puzzle on startup as well.
	warmDay(table, generator, appCache, time.Now().In(loc), loc, logger)

	<-ctx.Done()
	<-c.Stop().Done()
	logger.Info("Daily schedule stopped")
}

// warmDay generates the puzzle for the given day and caches it together
// with all row leaderboards.
func warmDay(table *dataset.Table, generator *game.Generator, appCache *cache.Cache, now time.Time, loc *time.Location, logger *slog.Logger) {
	date := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	dateStr := date.Format(game.DateFormat)
	ttl := cache.UntilNextReset(now, loc)

	puzzle, err := generator.Generate(date)
	if err != nil {
		logger.Error("daily warm: puzzle generation failed", "date", dateStr, "error", err)
		return
	}
	if data, err := json.Marshal(puzzle); err == nil {
		appCache.Set("puzzle:"+dateStr, data, ttl)
	}

	stat := game.StatCategories[puzzle.StatCategory]
	for i, row := range puzzle.Rows {
		leaders := game.RowLeaders(table, stat, row, 5)
		payload := map[string]interface{}{
			"date":    dateStr,
			"row":     i,
			"stat":    stat.ID,
			"leaders": leaders,
		}
		if data, err := json.Marshal(payload); err == nil {
			appCache.Set(fmt.Sprintf("leaders:%s:%d", dateStr, i), data, ttl)
		}
	}

	logger.Info("Daily warm complete", "date", dateStr, "stat", puzzle.StatCategory, "ttl", ttl.Round(time.Second))
}
