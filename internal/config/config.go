// Package config provides centralized configuration loaded from environment
// variables. A Config value is constructed once in cmd/ingest and passed
// explicitly to each component.
package config

import (
	"os"
	"strconv"
	"time"
)

// --------------------------------------------------------------------------
// Table names — single source of truth, matches schema.sql
// --------------------------------------------------------------------------

const (
	PlayersTable = "dim_players"
	SeasonsTable = "fact_player_seasons"
)

// DefaultESPNBaseURL is ESPN's unofficial NFL site API.
const DefaultESPNBaseURL = "http://site.api.espn.com/apis/site/v2/sports/football/nfl"

// --------------------------------------------------------------------------
// Config struct — populated from environment variables
// --------------------------------------------------------------------------

type Config struct {
	// Database
	DatabaseURL    string
	DBPoolMinConns int
	DBPoolMaxConns int
	DBPoolMaxLife  time.Duration

	// ESPN API
	ESPNBaseURL     string
	MaxRetries      int
	RetryDelay      time.Duration
	RequestInterval time.Duration
	HTTPTimeout     time.Duration

	// Pipeline season range (inclusive)
	StartSeason   int
	EndSeason     int
	CurrentSeason int

	// Logging
	LogLevel string
}

// Load reads configuration from environment variables with sensible defaults.
// DatabaseURL may be empty: API-only commands never touch the database, so
// the database layer enforces its presence instead.
func Load() *Config {
	return &Config{
		DatabaseURL:    envOr("DATABASE_URL", envOr("SUPABASE_DB_URL", "")),
		DBPoolMinConns: envInt("DB_POOL_MIN_CONNS", 1),
		DBPoolMaxConns: envInt("DB_POOL_MAX_CONNS", 4),
		DBPoolMaxLife:  time.Duration(envInt("DB_POOL_MAX_LIFE_MINUTES", 30)) * time.Minute,

		ESPNBaseURL:     envOr("ESPN_API_BASE_URL", DefaultESPNBaseURL),
		MaxRetries:      envInt("MAX_RETRIES", 3),
		RetryDelay:      time.Duration(envInt("RETRY_DELAY_SECONDS", 2)) * time.Second,
		RequestInterval: time.Duration(envInt("REQUEST_INTERVAL_MS", 500)) * time.Millisecond,
		HTTPTimeout:     time.Duration(envInt("HTTP_TIMEOUT_SECONDS", 30)) * time.Second,

		StartSeason:   envInt("START_SEASON", 2015),
		EndSeason:     envInt("END_SEASON", 2023),
		CurrentSeason: envInt("CURRENT_SEASON", 2024),

		LogLevel: envOr("LOG_LEVEL", "INFO"),
	}
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
