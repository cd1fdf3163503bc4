// Package handler provides HTTP handlers for all game API endpoints.
// Handlers compute over the in-memory dataset directly; there is no service
// layer.
package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/statpadgame/statpad-data/internal/api/respond"
	"github.com/statpadgame/statpad-data/internal/cache"
	"github.com/statpadgame/statpad-data/internal/config"
	"github.com/statpadgame/statpad-data/internal/dataset"
	"github.com/statpadgame/statpad-data/internal/game"
	"github.com/statpadgame/statpad-data/internal/override"
	"github.com/statpadgame/statpad-data/internal/results"
)

// Handler holds shared dependencies for all endpoint handlers.
type Handler struct {
	table     *dataset.Table
	generator *game.Generator
	overrides *override.Store
	board     *results.Board
	cache     *cache.Cache
	cfg       *config.Config
	logger    *slog.Logger
}

// New creates a Handler with shared dependencies.
func New(table *dataset.Table, generator *game.Generator, overrides *override.Store, board *results.Board, c *cache.Cache, cfg *config.Config, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		table:     table,
		generator: generator,
		overrides: overrides,
		board:     board,
		cache:     c,
		cfg:       cfg,
		logger:    logger,
	}
}

// Root serves API info at /.
// @Summary API root info
// @Description Returns API name, version, and status.
// @Tags meta
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"name":    "StatPad Data API",
		"version": "1.0.0",
		"status":  "running",
		"docs":    "/docs",
		"optimizations": []string{
			"in_memory_dataset",
			"gzip_compression",
			"in_memory_cache",
			"etag_support",
		},
	})
}

// HealthCheck returns basic health status.
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HealthCheckDataset verifies the dataset is loaded and non-empty.
// @Summary Dataset health check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health/dataset [get]
func (h *Handler) HealthCheckDataset(w http.ResponseWriter, r *http.Request) {
	if h.table == nil || h.table.Len() == 0 {
		respond.WriteJSONObject(w, http.StatusServiceUnavailable, map[string]interface{}{
			"status":    "unhealthy",
			"dataset":   "empty",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
		return
	}
	minYear, maxYear := h.table.YearBounds()
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"dataset":   "loaded",
		"rows":      h.table.Len(),
		"seasons":   fmt.Sprintf("%d-%d", minYear, maxYear),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HealthCheckCache returns cache statistics.
// @Summary Cache health check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health/cache [get]
func (h *Handler) HealthCheckCache(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"cache":     h.cache.Stats(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// --------------------------------------------------------------------------
// Helpers
// --------------------------------------------------------------------------

// puzzleDate resolves the date query parameter; empty means today in the
// reset timezone.
func (h *Handler) puzzleDate(r *http.Request) (time.Time, error) {
	if s := r.URL.Query().Get("date"); s != "" {
		d, err := time.Parse(game.DateFormat, s)
		if err != nil {
			return time.Time{}, fmt.Errorf("date must be YYYY-MM-DD")
		}
		return d, nil
	}
	now := time.Now().In(h.cfg.ResetLocation())
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
}

// puzzleTTL picks a cache TTL: today's puzzle expires at the next reset,
// past puzzles never change.
func (h *Handler) puzzleTTL(date time.Time) time.Duration {
	today := time.Now().In(h.cfg.ResetLocation()).Format(game.DateFormat)
	if date.Format(game.DateFormat) == today {
		return cache.UntilNextReset(time.Now(), h.cfg.ResetLocation())
	}
	return cache.TTLHistorical
}
