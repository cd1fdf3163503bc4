package dataset

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresConfig controls the optional Postgres dataset source.
type PostgresConfig struct {
	URL      string
	MinConns int
	MaxConns int
	MaxLife  time.Duration
}

// LoadPostgres loads the full player_stats table into memory via a pgx pool.
// The stats column is JSONB keyed by stat id; deployments that keep the
// season table in Postgres use this instead of the flat CSV file.
func LoadPostgres(ctx context.Context, cfg PostgresConfig) (*Table, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}
	if cfg.MinConns > 0 {
		poolCfg.MinConns = int32(cfg.MinConns)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = int32(cfg.MaxConns)
	}
	if cfg.MaxLife > 0 {
		poolCfg.MaxConnLifetime = cfg.MaxLife
	}
	poolCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	rows, err := pool.Query(ctx, `
		SELECT player, COALESCE(player_id, ''), season, team, position, stats
		FROM player_stats
		ORDER BY season, player`)
	if err != nil {
		return nil, fmt.Errorf("query player_stats: %w", err)
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		var r Row
		if err := rows.Scan(&r.Player, &r.PlayerID, &r.Season, &r.Team, &r.Position, &r.Stats); err != nil {
			return nil, fmt.Errorf("scan player_stats row: %w", err)
		}
		if r.Stats == nil {
			r.Stats = map[string]float64{}
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate player_stats: %w", err)
	}
	return New(out), nil
}
