// Package config provides centralized configuration loaded from environment
// variables. Shared by both cmd/api and cmd/statpad.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// DefaultResetTimezone is where the puzzle day rolls over (midnight Pacific).
const DefaultResetTimezone = "America/Los_Angeles"

// Config is populated from environment variables.
type Config struct {
	// Dataset source: a flat CSV file, or Postgres when DatabaseURL is set.
	DatasetPath    string
	DatabaseURL    string
	DBPoolMinConns int
	DBPoolMaxConns int
	DBPoolMaxLife  time.Duration

	// Override store (flat JSON file keyed by date).
	OverridePath string

	// API server
	APIHost     string
	APIPort     int
	Environment string // development, staging, production
	Debug       bool

	// Game
	ResetTimezone string
	AppURL        string
	MinAnswers    int
	MaxRetries    int
	BoardDays     int

	// Admin
	AdminToken string

	// CORS
	CORSAllowOrigins []string

	// Rate limiting
	RateLimitEnabled  bool
	RateLimitRequests int
	RateLimitWindow   time.Duration

	// Provider (season stat source used by `statpad build`)
	ProviderBaseURL string
	ProviderRPM     int

	// Cache
	CacheEnabled bool
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	cfg := &Config{
		DatasetPath:    envOr("DATASET_PATH", "data/nfl_player_stats.csv"),
		DatabaseURL:    envOr("DATABASE_URL", ""),
		DBPoolMinConns: envInt("DB_POOL_MIN_CONNS", 2),
		DBPoolMaxConns: envInt("DB_POOL_MAX_CONNS", 10),
		DBPoolMaxLife:  time.Duration(envInt("DB_POOL_MAX_LIFE_MINUTES", 30)) * time.Minute,

		OverridePath: envOr("OVERRIDE_PATH", "data/puzzle_overrides.json"),

		APIHost:     envOr("API_HOST", "0.0.0.0"),
		APIPort:     envInt("API_PORT", envInt("PORT", 8000)),
		Environment: envOr("ENVIRONMENT", "development"),
		Debug:       envBool("DEBUG", false),

		ResetTimezone: envOr("RESET_TIMEZONE", DefaultResetTimezone),
		AppURL:        envOr("APP_URL", "statpad.example.com"),
		MinAnswers:    envInt("PUZZLE_MIN_ANSWERS", 12),
		MaxRetries:    envInt("PUZZLE_MAX_RETRIES", 8),
		BoardDays:     envInt("BOARD_RETENTION_DAYS", 7),

		AdminToken: envOr("ADMIN_TOKEN", ""),

		CORSAllowOrigins: envList("CORS_ALLOW_ORIGINS", []string{
			"http://localhost:3000",
			"http://localhost:5173",
		}),

		RateLimitEnabled:  envBool("RATE_LIMIT_ENABLED", true),
		RateLimitRequests: envInt("RATE_LIMIT_REQUESTS", 100),
		RateLimitWindow:   time.Duration(envInt("RATE_LIMIT_WINDOW", 60)) * time.Second,

		ProviderBaseURL: envOr("STAT_PROVIDER_BASE_URL", "https://data.statpad.example.com/seasons"),
		ProviderRPM:     envInt("STAT_PROVIDER_RPM", 30),

		CacheEnabled: envBool("CACHE_ENABLED", true),
	}

	if _, err := time.LoadLocation(cfg.ResetTimezone); err != nil {
		return nil, fmt.Errorf("invalid RESET_TIMEZONE %q: %w", cfg.ResetTimezone, err)
	}
	return cfg, nil
}

// ResetLocation returns the loaded reset timezone.
func (c *Config) ResetLocation() *time.Location {
	loc, err := time.LoadLocation(c.ResetTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// IsProduction returns true if running in production environment.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// --------------------------------------------------------------------------
// Env helpers
// --------------------------------------------------------------------------

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return fallback
}

func envList(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return fallback
}
