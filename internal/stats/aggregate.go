package stats

import "sort"

type groupKey struct {
	playerID string
	season   int
}

type group struct {
	record SeasonalRecord
	weeks  map[int]struct{}
}

// Aggregate folds weekly records into one SeasonalRecord per (player,
// season). Counting stats are summed; Games is the number of distinct week
// values in the group. Duplicate rows within the same week are summed as-is
// but the week still counts once. Name, position, and team are taken from
// the first record observed for the group, so callers must guarantee
// position homogeneity per player-season.
//
// The result is sorted by player ID then season, making repeated runs over
// identical input byte-identical.
func Aggregate(weekly []WeeklyRecord) []SeasonalRecord {
	groups := make(map[groupKey]*group)

	for _, w := range weekly {
		key := groupKey{w.PlayerID, w.Season}
		g, ok := groups[key]
		if !ok {
			g = &group{
				record: SeasonalRecord{
					PlayerID: w.PlayerID,
					Name:     w.Name,
					Position: w.Position,
					Team:     w.Team,
					Season:   w.Season,
				},
				weeks: make(map[int]struct{}),
			}
			groups[key] = g
		}

		g.weeks[w.Week] = struct{}{}
		g.record.Attempts += w.Attempts
		g.record.Completions += w.Completions
		g.record.PassingYards += w.PassingYards
		g.record.PassingTDs += w.PassingTDs
		g.record.Interceptions += w.Interceptions
		g.record.Targets += w.Targets
		g.record.Receptions += w.Receptions
		g.record.ReceivingYards += w.ReceivingYards
		g.record.ReceivingTDs += w.ReceivingTDs
	}

	seasonal := make([]SeasonalRecord, 0, len(groups))
	for _, g := range groups {
		g.record.Games = len(g.weeks)
		seasonal = append(seasonal, g.record)
	}

	sort.Slice(seasonal, func(i, j int) bool {
		if seasonal[i].PlayerID != seasonal[j].PlayerID {
			return seasonal[i].PlayerID < seasonal[j].PlayerID
		}
		return seasonal[i].Season < seasonal[j].Season
	})
	return seasonal
}

// Players builds the deduplicated player dimension from seasonal records:
// one row per distinct player ID across all seasons, first occurrence wins,
// sorted by player ID. Placeholder attributes stay nil.
func Players(seasonal []SeasonalRecord) []PlayerDimension {
	seen := make(map[string]struct{})
	var players []PlayerDimension
	for _, r := range seasonal {
		if _, ok := seen[r.PlayerID]; ok {
			continue
		}
		seen[r.PlayerID] = struct{}{}
		players = append(players, PlayerDimension{
			PlayerID: r.PlayerID,
			Name:     r.Name,
			Position: r.Position,
		})
	}
	sort.Slice(players, func(i, j int) bool { return players[i].PlayerID < players[j].PlayerID })
	return players
}
