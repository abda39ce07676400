// Package pipeline orchestrates the batch run: extract weekly stat lines,
// transform them into qualified season records, and replace the store.
// Single-threaded and run-to-completion.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gridironlab/nfl-stats-etl/internal/config"
	"github.com/gridironlab/nfl-stats-etl/internal/db"
	"github.com/gridironlab/nfl-stats-etl/internal/load"
	"github.com/gridironlab/nfl-stats-etl/internal/provider/espn"
	"github.com/gridironlab/nfl-stats-etl/internal/stats"
)

// maxWeek is the last regular-season week scanned per season.
const maxWeek = 18

// Pipeline wires the extract, transform, and load stages.
type Pipeline struct {
	cfg    *config.Config
	client *espn.Client
	pool   *db.Pool
	logger *slog.Logger
}

// New constructs a Pipeline. All dependencies are passed in explicitly.
func New(cfg *config.Config, client *espn.Client, pool *db.Pool, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{cfg: cfg, client: client, pool: pool, logger: logger}
}

// Run executes one full pipeline pass over the configured season range.
// Fetch failures for individual weeks are recorded and skipped; a run that
// ends with zero qualified rows skips persistence and flags EmptyResult.
func (p *Pipeline) Run(ctx context.Context) Result {
	var result Result

	if err := p.pool.HealthCheck(ctx); err != nil {
		result.AddErrorf("database health check: %v", err)
		return result
	}

	weekly := p.extract(ctx, &result)
	result.WeeklyFetched = len(weekly)
	if len(weekly) == 0 {
		p.logger.Warn("no weekly records extracted")
		result.EmptyResult = true
		return result
	}

	players, seasons := p.transform(weekly, &result)
	if result.EmptyResult {
		p.logger.Warn("no qualified players, skipping persistence")
		return result
	}

	p.load(ctx, load.NewWriter(p.pool.Pool, p.logger), players, seasons, &result)

	p.logger.Info("pipeline complete", "summary", result.Summary())
	return result
}

// storeWriter is the slice of load.Writer the load stage needs.
type storeWriter interface {
	Replace(ctx context.Context, players []stats.PlayerDimension, seasons []stats.SeasonalRecord) error
	Counts(ctx context.Context) (players, seasons int64, err error)
}

// load replaces both tables, then reads the committed row counts back and
// checks them against what was sent. A failed count query is only logged;
// the refresh itself already committed.
func (p *Pipeline) load(ctx context.Context, w storeWriter, players []stats.PlayerDimension, seasons []stats.SeasonalRecord, result *Result) {
	p.logger.Info("loading to database", "players", len(players), "seasons", len(seasons))
	if err := w.Replace(ctx, players, seasons); err != nil {
		result.AddErrorf("replace tables: %v", err)
		return
	}
	result.PlayersLoaded = len(players)
	result.SeasonsLoaded = len(seasons)

	gotPlayers, gotSeasons, err := w.Counts(ctx)
	if err != nil {
		p.logger.Warn("post-load count check failed", "error", err)
		return
	}
	if gotPlayers != int64(len(players)) || gotSeasons != int64(len(seasons)) {
		result.AddErrorf("post-load count mismatch: players %d != %d, seasons %d != %d",
			gotPlayers, len(players), gotSeasons, len(seasons))
		return
	}
	p.logger.Info("post-load counts verified", "players", gotPlayers, "seasons", gotSeasons)
}

// extract walks every configured season week by week. A week returning
// no athletes ends that season's scan; a fetch failure is recorded and the
// scan moves on.
func (p *Pipeline) extract(ctx context.Context, result *Result) []stats.WeeklyRecord {
	var weekly []stats.WeeklyRecord

	for season := p.cfg.StartSeason; season <= p.cfg.EndSeason; season++ {
		p.logger.Info("extracting season", "season", season)
		seasonRows := 0

		for week := 1; week <= maxWeek; week++ {
			if ctx.Err() != nil {
				result.AddErrorf("extract canceled: %v", ctx.Err())
				return weekly
			}

			records, err := p.client.GetWeeklyStats(ctx, season, week)
			if err != nil {
				result.AddErrorf("fetch season %d week %d: %v", season, week, err)
				continue
			}
			if len(records) == 0 {
				break
			}

			weekly = append(weekly, records...)
			seasonRows += len(records)
		}

		p.logger.Info("season extracted", "season", season, "rows", seasonRows)
	}

	return weekly
}

// transform aggregates, derives metrics, and applies the qualification
// filter, then shapes the dimension and fact sets.
func (p *Pipeline) transform(weekly []stats.WeeklyRecord, result *Result) ([]stats.PlayerDimension, []stats.SeasonalRecord) {
	p.logger.Info("aggregating to seasonal")
	seasonal := stats.Aggregate(weekly)
	result.SeasonsAggregated = len(seasonal)

	p.logger.Info("calculating metrics")
	seasonal = stats.DeriveMetrics(seasonal, weekly)

	p.logger.Info("applying thresholds")
	qualified, counts := stats.Qualify(seasonal)
	result.QualifiedQB = counts.QB
	result.QualifiedWR = counts.WR
	p.logger.Info("qualified players", "total", counts.Total(), "qb", counts.QB, "wr", counts.WR)

	if len(qualified) == 0 {
		result.EmptyResult = true
		return nil, nil
	}

	return stats.Players(qualified), qualified
}

// Result tracks per-stage counts and accumulated non-fatal errors for one
// pipeline run.
type Result struct {
	WeeklyFetched     int
	SeasonsAggregated int
	QualifiedQB       int
	QualifiedWR       int
	PlayersLoaded     int
	SeasonsLoaded     int
	EmptyResult       bool
	Errors            []string
}

// AddErrorf records a formatted error message.
func (r *Result) AddErrorf(format string, args ...interface{}) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// Summary returns a human-readable summary of the run.
func (r *Result) Summary() string {
	return fmt.Sprintf(
		"weekly=%d seasons=%d qualified_qb=%d qualified_wr=%d players_loaded=%d seasons_loaded=%d errors=%d",
		r.WeeklyFetched, r.SeasonsAggregated,
		r.QualifiedQB, r.QualifiedWR,
		r.PlayersLoaded, r.SeasonsLoaded,
		len(r.Errors),
	)
}
