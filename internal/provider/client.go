// Package provider fetches season-level NFL statistics from the upstream
// stat feed. The feed serves one CSV per (category, season); the client is
// rate limited with a token bucket.
package provider

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/statpadgame/statpad-data/internal/dataset"
)

// Stat feed categories, one CSV frame each per season.
const (
	CategoryPassing   = "passing"
	CategoryRushing   = "rushing"
	CategoryReceiving = "receiving"
	CategoryDefense   = "defense"
)

// Categories lists all feed categories in fetch order.
var Categories = []string{CategoryPassing, CategoryRushing, CategoryReceiving, CategoryDefense}

// Client is the rate-limited HTTP client for the stat feed.
type Client struct {
	httpClient *http.Client
	baseURL    string
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// NewClient creates a stat feed client with rate limiting.
func NewClient(baseURL string, requestsPerMinute int, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	rps := float64(requestsPerMinute) / 60.0
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    baseURL,
		limiter:    rate.NewLimiter(rate.Limit(rps), 1),
		logger:     logger,
	}
}

// FetchSeason downloads one category frame for a season and parses it into
// dataset rows. Frame URLs follow <base>/<category>_<season>.csv.
func (c *Client) FetchSeason(ctx context.Context, category string, season int) ([]dataset.Row, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	u := fmt.Sprintf("%s/%s_%d.csv", c.baseURL, category, season)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request %s %d: %w", category, season, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		// Older seasons may lack some categories; callers treat an empty
		// frame as "no data", not an error.
		c.logger.Warn("season frame missing", "category", category, "season", season)
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 200))
		return nil, fmt.Errorf("feed %s %d returned %d: %s", category, season, resp.StatusCode, body)
	}

	rows, err := dataset.ReadCSV(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("decode %s %d frame: %w", category, season, err)
	}
	return rows, nil
}
