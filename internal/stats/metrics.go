package stats

import "math"

// Snap estimates are a fixed per-position heuristic, not measured data.
// Snap efficiency built on them is approximate by construction.
const (
	SnapsPerGameQB = 60
	SnapsPerGameWR = 50
)

const (
	// MinWeeksForConsistency is the minimum number of weekly observations
	// needed to score consistency; below it the score is neutral.
	MinWeeksForConsistency = 4
	NeutralConsistency     = 50.0
)

// EstimateSnaps returns the heuristic snap count for a player-season.
func EstimateSnaps(pos Position, games int) int {
	if pos == QB {
		return games * SnapsPerGameQB
	}
	return games * SnapsPerGameWR
}

// SnapEfficiency is unified yards per estimated snap, rounded to 4 decimals.
// Zero when snaps is zero.
func SnapEfficiency(yards, snaps int) float64 {
	if snaps == 0 {
		return 0
	}
	return round4(float64(yards) / float64(snaps))
}

// YardsPerAttempt is unified yards per pass attempt, rounded to 2 decimals.
// Zero when attempts is zero.
func YardsPerAttempt(yards, attempts int) float64 {
	if attempts == 0 {
		return 0
	}
	return round2(float64(yards) / float64(attempts))
}

// Consistency describes the variability of a player's weekly yardage.
type Consistency struct {
	Std   float64
	Mean  float64
	CV    float64
	Score float64
}

// WeeklyConsistency scores a per-week yard series. Fewer than
// MinWeeksForConsistency observations yield the neutral score with zero
// variability fields. Otherwise CV is the sample standard deviation over the
// mean (zero when the mean is not positive) and the score is
// clamp(100 - 50*CV, 0, 100): lower variability, higher score.
func WeeklyConsistency(yards []float64) Consistency {
	if len(yards) < MinWeeksForConsistency {
		return Consistency{Mean: mean(yards), Score: NeutralConsistency}
	}

	m := mean(yards)
	std := sampleStd(yards, m)
	cv := 0.0
	if m > 0 {
		cv = std / m
	}

	score := 100 - cv*50
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	return Consistency{
		Std:   round4(std),
		Mean:  round4(m),
		CV:    round4(cv),
		Score: round2(score),
	}
}

// DeriveMetrics fills the derived fields of each seasonal record: the snap
// estimate, position-unified yards/TDs/interceptions, the efficiency ratios,
// and the consistency score computed from the weekly yard series. The input
// slice is not modified.
func DeriveMetrics(seasonal []SeasonalRecord, weekly []WeeklyRecord) []SeasonalRecord {
	series := weeklySeries(weekly)

	out := make([]SeasonalRecord, len(seasonal))
	for i, r := range seasonal {
		if r.Position == QB {
			r.Yards = r.PassingYards
			r.TDs = r.PassingTDs
			r.Ints = r.Interceptions
		} else {
			r.Yards = r.ReceivingYards
			r.TDs = r.ReceivingTDs
			r.Ints = 0
		}

		r.Snaps = EstimateSnaps(r.Position, r.Games)
		r.SnapEfficiency = SnapEfficiency(r.Yards, r.Snaps)
		r.YardsPerAttempt = YardsPerAttempt(r.Yards, r.Attempts)

		c := WeeklyConsistency(series[groupKey{r.PlayerID, r.Season}])
		r.WeeklyCV = c.CV
		r.ConsistencyScore = c.Score

		out[i] = r
	}
	return out
}

// weeklySeries collects the unified weekly yard values per player-season.
func weeklySeries(weekly []WeeklyRecord) map[groupKey][]float64 {
	series := make(map[groupKey][]float64)
	for _, w := range weekly {
		key := groupKey{w.PlayerID, w.Season}
		series[key] = append(series[key], float64(w.UnifiedYards()))
	}
	return series
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// sampleStd is the n-1 (sample) standard deviation.
func sampleStd(xs []float64, m float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	var ss float64
	for _, x := range xs {
		d := x - m
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(xs)-1))
}

func round2(x float64) float64 { return math.Round(x*100) / 100 }
func round4(x float64) float64 { return math.Round(x*10000) / 10000 }
