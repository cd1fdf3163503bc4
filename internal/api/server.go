package api

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	corslib "github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/statpadgame/statpad-data/internal/api/handler"
	"github.com/statpadgame/statpad-data/internal/cache"
	"github.com/statpadgame/statpad-data/internal/config"
	"github.com/statpadgame/statpad-data/internal/dataset"
	"github.com/statpadgame/statpad-data/internal/game"
	"github.com/statpadgame/statpad-data/internal/override"
	"github.com/statpadgame/statpad-data/internal/results"
)

// NewRouter creates and configures the Chi router with all middleware and routes.
func NewRouter(table *dataset.Table, generator *game.Generator, overrides *override.Store, board *results.Board, appCache *cache.Cache, cfg *config.Config, logger *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	// --- Middleware stack ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(TimingMiddleware)
	r.Use(middleware.Compress(5)) // gzip

	// CORS
	c := corslib.New(corslib.Options{
		AllowedOrigins:   cfg.CORSAllowOrigins,
		AllowedMethods:   []string{"GET", "HEAD", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Accept-Encoding", "Content-Type", "If-None-Match", "Cache-Control", "X-Admin-Token"},
		ExposedHeaders:   []string{"X-Process-Time", "X-Cache", "ETag"},
		AllowCredentials: false,
	})
	r.Use(c.Handler)

	// Rate limiting
	if cfg.RateLimitEnabled {
		r.Use(RateLimitMiddleware(cfg.RateLimitRequests, cfg.RateLimitWindow))
	}

	// --- Handler dependencies ---
	h := handler.New(table, generator, overrides, board, appCache, cfg, logger)

	// --- Routes ---

	// Root
	r.Get("/", h.Root)

	// Health checks
	r.Route("/health", func(r chi.Router) {
		r.Get("/", h.HealthCheck)
		r.Get("/dataset", h.HealthCheckDataset)
		r.Get("/cache", h.HealthCheckCache)
	})

	// Swagger UI
	r.Get("/docs/*", httpSwagger.Handler(
		httpSwagger.URL("/docs/doc.json"),
	))

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Puzzle
		r.Get("/puzzle", h.GetPuzzle)
		r.Get("/leaders", h.GetLeaders)
		r.Get("/search", h.SearchPlayers)

		// Catalog
		r.Get("/stats/definitions", h.GetStatDefinitions)
		r.Get("/teams", h.GetTeams)

		// Scoring
		r.Post("/score", h.PostScore)
		r.Get("/board", h.GetBoard)
		r.Get("/results/{id}", h.GetResult)

		// Admin
		r.Route("/admin", func(r chi.Router) {
			r.Use(AdminAuthMiddleware(cfg.AdminToken))
			r.Get("/overrides", h.ListOverrides)
			r.Route("/override/{date}", func(r chi.Router) {
				r.Put("/", h.PutOverride)
				r.Get("/", h.GetOverride)
				r.Delete("/", h.DeleteOverride)
			})
		})
	})

	return r
}
