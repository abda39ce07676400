// Package load persists transform output with a full-refresh write pattern:
// both target tables are replaced wholesale inside a single transaction.
package load

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gridironlab/nfl-stats-etl/internal/config"
	"github.com/gridironlab/nfl-stats-etl/internal/stats"
)

// Writer replaces the player dimension and season fact tables.
type Writer struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// NewWriter creates a Writer on the given pool.
func NewWriter(pool *pgxpool.Pool, logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Writer{pool: pool, logger: logger}
}

// Replace truncates dim_players and fact_player_seasons and bulk-inserts the
// new sets, all in one transaction. A failure anywhere rolls the whole
// refresh back, so the store never holds a partially truncated state.
func (w *Writer) Replace(ctx context.Context, players []stats.PlayerDimension, seasons []stats.SeasonalRecord) error {
	tx, err := w.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	// CASCADE clears fact rows referencing the dimension.
	if _, err := tx.Exec(ctx, "TRUNCATE TABLE "+config.PlayersTable+" CASCADE"); err != nil {
		return fmt.Errorf("truncate %s: %w", config.PlayersTable, err)
	}
	if _, err := tx.Exec(ctx, "TRUNCATE TABLE "+config.SeasonsTable); err != nil {
		return fmt.Errorf("truncate %s: %w", config.SeasonsTable, err)
	}

	playerCount, err := copyPlayers(ctx, tx, players)
	if err != nil {
		return fmt.Errorf("insert players: %w", err)
	}

	seasonCount, err := copySeasons(ctx, tx, seasons)
	if err != nil {
		return fmt.Errorf("insert seasons: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	w.logger.Info("tables replaced", "players", playerCount, "seasons", seasonCount)
	return nil
}

func copyPlayers(ctx context.Context, tx pgx.Tx, players []stats.PlayerDimension) (int64, error) {
	return tx.CopyFrom(ctx,
		pgx.Identifier{config.PlayersTable},
		[]string{"player_id", "name", "position", "draft_year", "height", "weight", "current_team"},
		pgx.CopyFromSlice(len(players), func(i int) ([]interface{}, error) {
			p := players[i]
			return []interface{}{
				p.PlayerID, p.Name, string(p.Position),
				p.DraftYear, p.Height, p.Weight, p.CurrentTeam,
			}, nil
		}),
	)
}

func copySeasons(ctx context.Context, tx pgx.Tx, seasons []stats.SeasonalRecord) (int64, error) {
	return tx.CopyFrom(ctx,
		pgx.Identifier{config.SeasonsTable},
		[]string{
			"player_id", "season_year", "team", "games", "snaps",
			"attempts", "completions", "yards", "tds", "ints",
			"snap_efficiency", "yards_per_attempt", "weekly_cv", "consistency_score",
		},
		pgx.CopyFromSlice(len(seasons), func(i int) ([]interface{}, error) {
			s := seasons[i]
			return []interface{}{
				s.PlayerID, s.Season, s.Team, s.Games, s.Snaps,
				s.Attempts, s.Completions, s.Yards, s.TDs, s.Ints,
				s.SnapEfficiency, s.YardsPerAttempt, s.WeeklyCV, s.ConsistencyScore,
			}, nil
		}),
	)
}

// Counts returns the current table row counts, for post-load verification.
func (w *Writer) Counts(ctx context.Context) (players, seasons int64, err error) {
	if err = w.pool.QueryRow(ctx, "SELECT COUNT(*) FROM "+config.PlayersTable).Scan(&players); err != nil {
		return 0, 0, fmt.Errorf("count %s: %w", config.PlayersTable, err)
	}
	if err = w.pool.QueryRow(ctx, "SELECT COUNT(*) FROM "+config.SeasonsTable).Scan(&seasons); err != nil {
		return 0, 0, fmt.Errorf("count %s: %w", config.SeasonsTable, err)
	}
	return players, seasons, nil
}
