// Package stats holds the player stat data model and the weekly-to-seasonal
// transform: aggregation, metric derivation, and qualification filtering.
package stats

// Position is a player position group. Only quarterbacks and wide receivers
// flow through this pipeline.
type Position string

const (
	QB Position = "QB"
	WR Position = "WR"
)

// UnknownTeam is the sentinel used when a weekly record carries no team.
const UnknownTeam = "UNK"

// WeeklyRecord is one player's stat line for one game-week, exactly as
// extracted. Records are never mutated after extraction.
type WeeklyRecord struct {
	PlayerID string
	Name     string
	Position Position
	Team     string
	Season   int
	Week     int

	// QB passing stats
	Attempts      int
	Completions   int
	PassingYards  int
	PassingTDs    int
	Interceptions int

	// WR receiving stats
	Targets        int
	Receptions     int
	ReceivingYards int
	ReceivingTDs   int
}

// UnifiedYards returns the position-relevant yardage: passing yards for a
// QB, receiving yards for a WR.
func (r WeeklyRecord) UnifiedYards() int {
	if r.Position == QB {
		return r.PassingYards
	}
	return r.ReceivingYards
}

// SeasonalRecord is the aggregation of a player's weekly records for one
// season, plus derived metrics. Produced deterministically by the transform;
// re-running the pipeline is the only way it changes.
type SeasonalRecord struct {
	PlayerID string
	Name     string
	Position Position
	Team     string
	Season   int

	// Games is the number of distinct weeks contributing to the sums.
	Games int

	// Summed counting stats
	Attempts       int
	Completions    int
	PassingYards   int
	PassingTDs     int
	Interceptions  int
	Targets        int
	Receptions     int
	ReceivingYards int
	ReceivingTDs   int

	// Derived fields, filled by DeriveMetrics.
	Snaps            int // heuristic estimate, not measured
	Yards            int
	TDs              int
	Ints             int
	SnapEfficiency   float64
	YardsPerAttempt  float64
	WeeklyCV         float64
	ConsistencyScore float64
}

// PlayerDimension is one deduplicated player row. The placeholder attributes
// are not sourced by this pipeline and persist as NULL.
type PlayerDimension struct {
	PlayerID string
	Name     string
	Position Position

	DraftYear   *int
	Height      *string
	Weight      *int
	CurrentTeam *string
}
