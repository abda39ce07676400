// Command ingest is the NFL stats ETL CLI.
//
// Usage:
//
//	nfl-ingest run --start 2015 --end 2023
//	nfl-ingest check
//	nfl-ingest week
//	nfl-ingest scoreboard --season 2023 --week 5
//	nfl-ingest views deploy
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/gridironlab/nfl-stats-etl/internal/config"
	"github.com/gridironlab/nfl-stats-etl/internal/db"
	"github.com/gridironlab/nfl-stats-etl/internal/load"
	"github.com/gridironlab/nfl-stats-etl/internal/pipeline"
	"github.com/gridironlab/nfl-stats-etl/internal/provider/espn"
)

var logLevel = new(slog.LevelVar)

var logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	root := &cobra.Command{
		Use:   "nfl-ingest",
		Short: "NFL QB/WR season stats ETL",
	}

	root.AddCommand(runCmd())
	root.AddCommand(checkCmd())
	root.AddCommand(weekCmd())
	root.AddCommand(scoreboardCmd())
	root.AddCommand(viewsCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// --------------------------------------------------------------------------
// run command
// --------------------------------------------------------------------------

func runCmd() *cobra.Command {
	var startSeason, endSeason int
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the full extract → transform → load pipeline",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(func(ctx context.Context, cfg *config.Config, pool *db.Pool) error {
				if startSeason > 0 {
					cfg.StartSeason = startSeason
				}
				if endSeason > 0 {
					cfg.EndSeason = endSeason
				}
				if cfg.StartSeason > cfg.EndSeason {
					return fmt.Errorf("start season %d is after end season %d", cfg.StartSeason, cfg.EndSeason)
				}

				client := espn.NewClient(cfg, logger)
				start := time.Now()
				result := pipeline.New(cfg, client, pool, logger).Run(ctx)

				logger.Info("pipeline finished",
					"duration", time.Since(start).Round(time.Second),
					"summary", result.Summary())
				for _, e := range result.Errors {
					logger.Error("pipeline error", "error", e)
				}
				if result.EmptyResult {
					logger.Warn("empty result: nothing was persisted")
				}
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&startSeason, "start", 0, "First season year (default from START_SEASON)")
	cmd.Flags().IntVar(&endSeason, "end", 0, "Last season year (default from END_SEASON)")
	return cmd
}

// --------------------------------------------------------------------------
// check command
// --------------------------------------------------------------------------

func checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Smoke-test database and ESPN API connectivity",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(func(ctx context.Context, cfg *config.Config, pool *db.Pool) error {
				version, err := pool.ServerVersion(ctx)
				if err != nil {
					return fmt.Errorf("database check: %w", err)
				}
				logger.Info("database ok", "version", truncateStr(version, 60))

				client := espn.NewClient(cfg, logger)
				sb, err := client.GetScoreboard(ctx, 0, 0, "")
				if err != nil {
					return fmt.Errorf("scoreboard check: %w", err)
				}
				logger.Info("scoreboard ok", "games", len(sb.Events), "week", sb.Week.Number)

				teams, err := client.GetTeams(ctx)
				if err != nil {
					return fmt.Errorf("teams check: %w", err)
				}
				logger.Info("teams ok", "count", len(teams))

				if len(teams) > 0 {
					roster, err := client.GetTeamRoster(ctx, teams[0].ID)
					if err != nil {
						return fmt.Errorf("roster check: %w", err)
					}
					logger.Info("roster ok", "team", roster.Team.Abbreviation, "groups", len(roster.Athletes))
				}

				standings, err := client.GetStandings(ctx, 0)
				if err != nil {
					return fmt.Errorf("standings check: %w", err)
				}
				logger.Info("standings ok", "conferences", len(standings.Children))

				end := time.Now()
				games, err := client.GamesByDateRange(ctx, end.AddDate(0, 0, -7), end)
				if err != nil {
					return fmt.Errorf("date range check: %w", err)
				}
				logger.Info("date range ok", "games", len(games))
				return nil
			})
		},
	}
}

// --------------------------------------------------------------------------
// week command
// --------------------------------------------------------------------------

func weekCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "week",
		Short: "Print the current NFL week and season phase",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(func(ctx context.Context, cfg *config.Config, client *espn.Client) error {
				week, err := client.CurrentWeek(ctx)
				if err != nil {
					return err
				}
				seasonType, err := client.SeasonType(ctx)
				if err != nil {
					return err
				}
				fmt.Printf("week %d (%s season)\n", week, seasonType)
				return nil
			})
		},
	}
}

// --------------------------------------------------------------------------
// scoreboard command
// --------------------------------------------------------------------------

func scoreboardCmd() *cobra.Command {
	var season, week int
	var date string
	cmd := &cobra.Command{
		Use:   "scoreboard",
		Short: "Fetch and summarize a scoreboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(func(ctx context.Context, cfg *config.Config, client *espn.Client) error {
				sb, err := client.GetScoreboard(ctx, season, week, date)
				if err != nil {
					return err
				}
				fmt.Printf("season %d week %d: %d games\n", sb.Season.Year, sb.Week.Number, len(sb.Events))
				for _, ev := range sb.Events {
					fmt.Printf("  %-40s %s\n", ev.Name, ev.Status.Type.Description)
				}
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&season, "season", 0, "Season year")
	cmd.Flags().IntVar(&week, "week", 0, "Week number (1-18)")
	cmd.Flags().StringVar(&date, "date", "", "Date (YYYYMMDD)")
	return cmd
}

// --------------------------------------------------------------------------
// views command
// --------------------------------------------------------------------------

func viewsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "views",
		Short: "Manage database schema and leaderboard views",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "deploy",
		Short: "Apply table and leaderboard view DDL",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(func(ctx context.Context, cfg *config.Config, pool *db.Pool) error {
				if err := load.DeploySchema(ctx, pool.Pool, logger); err != nil {
					return err
				}
				return load.DeployViews(ctx, pool.Pool, logger)
			})
		},
	})
	return cmd
}

// --------------------------------------------------------------------------
// Shared setup
// --------------------------------------------------------------------------

// withDB handles config loading, DB connection, and context cancellation.
func withDB(fn func(ctx context.Context, cfg *config.Config, pool *db.Pool) error) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cfg := loadConfig()

	pool, err := db.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	return fn(ctx, cfg, pool)
}

// withClient is withDB for API-only commands: no database connection.
func withClient(fn func(ctx context.Context, cfg *config.Config, client *espn.Client) error) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cfg := loadConfig()
	return fn(ctx, cfg, espn.NewClient(cfg, logger))
}

func loadConfig() *config.Config {
	cfg := config.Load()
	logLevel.Set(parseLevel(cfg.LogLevel))
	return cfg
}

func parseLevel(s string) slog.Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func truncateStr(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
