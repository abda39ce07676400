package stats

// Qualification thresholds: minimum volume for a player-season to appear in
// final output.
const (
	QBAttemptThreshold = 200
	WRTargetThreshold  = 40
)

// QualifyCounts reports how many rows per position survived the filter.
type QualifyCounts struct {
	QB int
	WR int
}

// Total returns the number of qualified rows.
func (c QualifyCounts) Total() int { return c.QB + c.WR }

// Qualify retains seasonal records meeting the standard volume thresholds
// (QB >= 200 attempts, WR >= 40 targets) and having a non-empty player name.
// An empty result is not an error; the caller decides how to report it.
func Qualify(seasonal []SeasonalRecord) ([]SeasonalRecord, QualifyCounts) {
	return QualifyAt(seasonal, QBAttemptThreshold, WRTargetThreshold)
}

// QualifyAt is Qualify with explicit thresholds. Raising either threshold
// can only shrink the qualified set.
func QualifyAt(seasonal []SeasonalRecord, qbAttempts, wrTargets int) ([]SeasonalRecord, QualifyCounts) {
	var (
		qualified []SeasonalRecord
		counts    QualifyCounts
	)
	for _, r := range seasonal {
		if r.Name == "" {
			continue
		}
		switch r.Position {
		case QB:
			if r.Attempts >= qbAttempts {
				qualified = append(qualified, r)
				counts.QB++
			}
		case WR:
			if r.Targets >= wrTargets {
				qualified = append(qualified, r)
				counts.WR++
			}
		}
	}
	return qualified, counts
}
