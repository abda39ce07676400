package espn

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/gridironlab/nfl-stats-etl/internal/stats"
)

// --------------------------------------------------------------------------
// Weekly player statistics — the feed the transform consumes
// --------------------------------------------------------------------------

// weeklyStatsResponse is the typed /statistics/players response for one
// season-week.
type weeklyStatsResponse struct {
	Season struct {
		Year int `json:"year"`
	} `json:"season"`
	Week struct {
		Number int `json:"number"`
	} `json:"week"`
	Athletes []weeklyAthlete `json:"athletes"`
}

type weeklyAthlete struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	Position    struct {
		Abbreviation string `json:"abbreviation"`
	} `json:"position"`
	Team struct {
		Abbreviation string `json:"abbreviation"`
	} `json:"team"`
	Statistics weeklyStatLine `json:"statistics"`
}

// weeklyStatLine carries the counting stats. Absent fields decode to zero,
// matching the null-to-zero data policy.
type weeklyStatLine struct {
	Attempts            int `json:"attempts"`
	Completions         int `json:"completions"`
	PassingYards        int `json:"passingYards"`
	PassingTouchdowns   int `json:"passingTouchdowns"`
	Interceptions       int `json:"interceptions"`
	Targets             int `json:"targets"`
	Receptions          int `json:"receptions"`
	ReceivingYards      int `json:"receivingYards"`
	ReceivingTouchdowns int `json:"receivingTouchdowns"`
}

// GetWeeklyStats fetches the QB/WR stat lines for one season-week. Athletes
// at other positions are dropped. An empty (but present) athletes array
// means the week has no data; a response without the athletes key at all is
// a shape error.
func (c *Client) GetWeeklyStats(ctx context.Context, season, week int) ([]stats.WeeklyRecord, error) {
	params := url.Values{
		"season": {strconv.Itoa(season)},
		"week":   {strconv.Itoa(week)},
	}

	var resp weeklyStatsResponse
	if err := c.get(ctx, "/statistics/players", params, &resp); err != nil {
		return nil, err
	}
	if resp.Athletes == nil {
		return nil, &FetchError{Endpoint: "/statistics/players", Err: fmt.Errorf("response missing athletes")}
	}

	records := make([]stats.WeeklyRecord, 0, len(resp.Athletes))
	for _, a := range resp.Athletes {
		rec, ok := normalizeWeeklyAthlete(a, season, week)
		if !ok {
			continue
		}
		records = append(records, rec)
	}

	c.logger.Debug("fetched weekly stats",
		"season", season, "week", week,
		"athletes", len(resp.Athletes), "qb_wr", len(records))
	return records, nil
}

// normalizeWeeklyAthlete converts one athlete entry into a WeeklyRecord.
// Returns ok=false for positions outside the pipeline.
func normalizeWeeklyAthlete(a weeklyAthlete, season, week int) (stats.WeeklyRecord, bool) {
	pos := stats.Position(a.Position.Abbreviation)
	if pos != stats.QB && pos != stats.WR {
		return stats.WeeklyRecord{}, false
	}

	team := a.Team.Abbreviation
	if team == "" {
		team = stats.UnknownTeam
	}

	return stats.WeeklyRecord{
		PlayerID: a.ID,
		Name:     a.DisplayName,
		Position: pos,
		Team:     team,
		Season:   season,
		Week:     week,

		Attempts:       a.Statistics.Attempts,
		Completions:    a.Statistics.Completions,
		PassingYards:   a.Statistics.PassingYards,
		PassingTDs:     a.Statistics.PassingTouchdowns,
		Interceptions:  a.Statistics.Interceptions,
		Targets:        a.Statistics.Targets,
		Receptions:     a.Statistics.Receptions,
		ReceivingYards: a.Statistics.ReceivingYards,
		ReceivingTDs:   a.Statistics.ReceivingTouchdowns,
	}, true
}
