package stats

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func almostEqual(a, b float64) bool { return math.Abs(a-b) < epsilon }

func TestEstimateSnaps(t *testing.T) {
	tests := []struct {
		name  string
		pos   Position
		games int
		want  int
	}{
		{"QB full season", QB, 17, 1020},
		{"WR full season", WR, 17, 850},
		{"QB no games", QB, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EstimateSnaps(tt.pos, tt.games); got != tt.want {
				t.Errorf("EstimateSnaps(%s, %d) = %d, want %d", tt.pos, tt.games, got, tt.want)
			}
		})
	}
}

func TestSnapEfficiency(t *testing.T) {
	tests := []struct {
		name  string
		yards int
		snaps int
		want  float64
	}{
		{"normal", 850, 1020, 0.8333},
		{"zero snaps guards divide-by-zero", 850, 0, 0},
		{"zero yards", 0, 1020, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SnapEfficiency(tt.yards, tt.snaps)
			if !almostEqual(got, tt.want) {
				t.Errorf("SnapEfficiency(%d, %d) = %v, want %v", tt.yards, tt.snaps, got, tt.want)
			}
			if got < 0 {
				t.Errorf("SnapEfficiency must be non-negative, got %v", got)
			}
		})
	}
}

func TestYardsPerAttempt(t *testing.T) {
	tests := []struct {
		name     string
		yards    int
		attempts int
		want     float64
	}{
		{"normal", 4500, 560, 8.04},
		{"zero attempts is not an error", 300, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := YardsPerAttempt(tt.yards, tt.attempts)
			if !almostEqual(got, tt.want) {
				t.Errorf("YardsPerAttempt(%d, %d) = %v, want %v", tt.yards, tt.attempts, got, tt.want)
			}
		})
	}
}

func TestWeeklyConsistencyShortSeries(t *testing.T) {
	for _, series := range [][]float64{nil, {100}, {100, 150}, {100, 150, 80}} {
		c := WeeklyConsistency(series)
		if c.Score != NeutralConsistency {
			t.Errorf("series of %d weeks: score = %v, want %v", len(series), c.Score, NeutralConsistency)
		}
		if c.CV != 0 || c.Std != 0 {
			t.Errorf("series of %d weeks: variability fields must be zero, got cv=%v std=%v", len(series), c.CV, c.Std)
		}
	}
}

func TestWeeklyConsistencyKnownSeries(t *testing.T) {
	// mean 112.5, sample std sqrt(2675/3) ≈ 29.8608, CV ≈ 0.2654
	c := WeeklyConsistency([]float64{100, 150, 80, 120})

	if !almostEqual(c.Mean, 112.5) {
		t.Errorf("Mean = %v, want 112.5", c.Mean)
	}
	if !almostEqual(c.Std, 29.8608) {
		t.Errorf("Std = %v, want 29.8608", c.Std)
	}
	if !almostEqual(c.CV, 0.2654) {
		t.Errorf("CV = %v, want 0.2654", c.CV)
	}
	if !almostEqual(c.Score, 86.73) {
		t.Errorf("Score = %v, want 86.73", c.Score)
	}
}

func TestWeeklyConsistencyBounds(t *testing.T) {
	tests := []struct {
		name   string
		series []float64
	}{
		{"identical weeks", []float64{100, 100, 100, 100}},
		{"wild variance", []float64{0, 0, 0, 400}},
		{"all zero mean", []float64{0, 0, 0, 0}},
		{"mixed", []float64{10, 200, 5, 180, 90}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := WeeklyConsistency(tt.series)
			if c.Score < 0 || c.Score > 100 {
				t.Errorf("score %v out of [0, 100]", c.Score)
			}
		})
	}

	// Perfectly steady output scores a perfect 100.
	if c := WeeklyConsistency([]float64{100, 100, 100, 100}); c.Score != 100 {
		t.Errorf("identical weeks score = %v, want 100", c.Score)
	}
	// Nonpositive mean zeroes the CV and leaves a neutral-or-better score.
	if c := WeeklyConsistency([]float64{0, 0, 0, 0}); c.CV != 0 || c.Score != 100 {
		t.Errorf("zero-mean series: cv=%v score=%v, want cv=0 score=100", c.CV, c.Score)
	}
}

func TestDeriveMetricsUnifiesByPosition(t *testing.T) {
	weekly := []WeeklyRecord{
		{PlayerID: "qb1", Position: QB, Season: 2023, Week: 1, PassingYards: 300},
		{PlayerID: "qb1", Position: QB, Season: 2023, Week: 2, PassingYards: 280},
		{PlayerID: "wr1", Position: WR, Season: 2023, Week: 1, ReceivingYards: 120},
	}
	seasonal := []SeasonalRecord{
		{PlayerID: "qb1", Position: QB, Season: 2023, Games: 2,
			Attempts: 60, PassingYards: 580, PassingTDs: 5, Interceptions: 2},
		{PlayerID: "wr1", Position: WR, Season: 2023, Games: 1,
			Targets: 10, ReceivingYards: 120, ReceivingTDs: 1, Interceptions: 99},
	}

	out := DeriveMetrics(seasonal, weekly)

	qb := out[0]
	if qb.Yards != 580 || qb.TDs != 5 || qb.Ints != 2 {
		t.Errorf("QB unified = (%d, %d, %d), want (580, 5, 2)", qb.Yards, qb.TDs, qb.Ints)
	}
	if qb.Snaps != 120 {
		t.Errorf("QB snaps = %d, want 120", qb.Snaps)
	}
	if !almostEqual(qb.SnapEfficiency, 4.8333) {
		t.Errorf("QB snap efficiency = %v, want 4.8333", qb.SnapEfficiency)
	}
	if !almostEqual(qb.YardsPerAttempt, 9.67) {
		t.Errorf("QB yards/attempt = %v, want 9.67", qb.YardsPerAttempt)
	}
	// Two weekly samples: below the consistency minimum.
	if qb.ConsistencyScore != NeutralConsistency || qb.WeeklyCV != 0 {
		t.Errorf("QB consistency = (%v, %v), want (50, 0)", qb.ConsistencyScore, qb.WeeklyCV)
	}

	wr := out[1]
	if wr.Yards != 120 || wr.TDs != 1 || wr.Ints != 0 {
		t.Errorf("WR unified = (%d, %d, %d), want (120, 1, 0): WR interceptions are always zero", wr.Yards, wr.TDs, wr.Ints)
	}
	if wr.Snaps != 50 {
		t.Errorf("WR snaps = %d, want 50", wr.Snaps)
	}
}

func TestDeriveMetricsDoesNotMutateInput(t *testing.T) {
	seasonal := []SeasonalRecord{
		{PlayerID: "qb1", Position: QB, Season: 2023, Games: 2, PassingYards: 580},
	}
	DeriveMetrics(seasonal, nil)
	if seasonal[0].Snaps != 0 || seasonal[0].Yards != 0 {
		t.Errorf("input slice was mutated: %+v", seasonal[0])
	}
}
