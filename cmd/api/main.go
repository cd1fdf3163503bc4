// Command api is the NFL StatPad game server.
//
// Usage:
//
//	statpad-api
//	API_PORT=8080 statpad-api

// @title NFL StatPad API
// @version 1.0.0
// @description Daily NFL trivia game backend: deterministic daily puzzles over historical player-season stats, pick validation, percentile scoring, and shareable results.
// @host localhost:8000
// @BasePath /api/v1
// @schemes http https
// @contact.name StatPad
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"

	"github.com/statpadgame/statpad-data/internal/api"
	"github.com/statpadgame/statpad-data/internal/cache"
	"github.com/statpadgame/statpad-data/internal/config"
	"github.com/statpadgame/statpad-data/internal/dataset"
	"github.com/statpadgame/statpad-data/internal/game"
	"github.com/statpadgame/statpad-data/internal/override"
	"github.com/statpadgame/statpad-data/internal/results"
	"github.com/statpadgame/statpad-data/internal/schedule"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	// Load .env if present
	_ = godotenv.Load(".env")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Sanity-check the stat catalog before serving anything.
	if err := game.ValidateCatalog(); err != nil {
		logger.Error("Stat catalog is inconsistent", "error", err)
		os.Exit(1)
	}

	// Context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	// Load the dataset into memory: Postgres when configured, CSV otherwise.
	var table *dataset.Table
	if cfg.DatabaseURL != "" {
		logger.Info("Loading dataset from Postgres...")
		table, err = dataset.LoadPostgres(ctx, dataset.PostgresConfig{
			URL:      cfg.DatabaseURL,
			MinConns: cfg.DBPoolMinConns,
			MaxConns: cfg.DBPoolMaxConns,
			MaxLife:  cfg.DBPoolMaxLife,
		})
	} else {
		logger.Info("Loading dataset from file", "path", cfg.DatasetPath)
		table, err = dataset.LoadCSV(cfg.DatasetPath)
	}
	if err != nil {
		logger.Error("Failed to load dataset", "error", err)
		os.Exit(1)
	}
	minYear, maxYear := table.YearBounds()
	logger.Info("Dataset loaded", "rows", table.Len(), "seasons", fmt.Sprintf("%d-%d", minYear, maxYear))

	// Override store and puzzle generator
	overrides := override.NewStore(cfg.OverridePath)
	generator := game.NewGenerator(table, overrides, game.GeneratorOptions{
		MinAnswers: cfg.MinAnswers,
		MaxRetries: cfg.MaxRetries,
	}, logger)

	// In-memory results board (recent days only)
	board := results.NewBoard(cfg.BoardDays)

	// Initialize cache
	appCache := cache.New(cfg.CacheEnabled)
	logger.Info("Cache initialized", "enabled", cfg.CacheEnabled)

	// Daily puzzle warm + cache sweep scheduler
	go schedule.Start(ctx, table, generator, appCache, cfg, logger)

	// Create router
	router := api.NewRouter(table, generator, overrides, board, appCache, cfg, logger)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.APIHost, cfg.APIPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in background
	go func() {
		logger.Info("Starting NFL StatPad API",
			"addr", addr,
			"environment", cfg.Environment,
			"docs", fmt.Sprintf("http://localhost:%d/docs/", cfg.APIPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt
	<-ctx.Done()
	logger.Info("Shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown error", "error", err)
	}
	logger.Info("Server stopped")
}
