package espn

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// --------------------------------------------------------------------------
// Teams
// --------------------------------------------------------------------------

type teamsResponse struct {
	Sports []struct {
		Leagues []struct {
			Teams []TeamEntry `json:"teams"`
		} `json:"leagues"`
	} `json:"sports"`
}

// TeamEntry wraps a team in the /teams listing.
type TeamEntry struct {
	Team TeamInfo `json:"team"`
}

// GetTeams fetches all NFL teams.
func (c *Client) GetTeams(ctx context.Context) ([]TeamInfo, error) {
	var resp teamsResponse
	if err := c.get(ctx, "/teams", nil, &resp); err != nil {
		return nil, err
	}
	if len(resp.Sports) == 0 || len(resp.Sports[0].Leagues) == 0 {
		return nil, &FetchError{Endpoint: "/teams", Err: fmt.Errorf("response missing sports/leagues nesting")}
	}

	entries := resp.Sports[0].Leagues[0].Teams
	teams := make([]TeamInfo, len(entries))
	for i, e := range entries {
		teams[i] = e.Team
	}
	c.logger.Info("fetched teams", "count", len(teams))
	return teams, nil
}

// --------------------------------------------------------------------------
// Roster
// --------------------------------------------------------------------------

// Roster is the typed /teams/{id}/roster response. Athletes are grouped by
// position (offense, defense, special teams).
type Roster struct {
	Athletes []RosterGroup `json:"athletes"`
	Team     TeamInfo      `json:"team"`
}

type RosterGroup struct {
	Position string    `json:"position"`
	Items    []Athlete `json:"items"`
}

// Athlete is a player entry on a roster.
type Athlete struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	Position    struct {
		Abbreviation string `json:"abbreviation"`
	} `json:"position"`
	Height float64 `json:"height"`
	Weight float64 `json:"weight"`
}

// GetTeamRoster fetches the roster for one team.
func (c *Client) GetTeamRoster(ctx context.Context, teamID string) (*Roster, error) {
	var roster Roster
	path := "/teams/" + teamID + "/roster"
	if err := c.get(ctx, path, nil, &roster); err != nil {
		return nil, err
	}
	if roster.Athletes == nil {
		return nil, &FetchError{Endpoint: path, Err: fmt.Errorf("response missing athletes")}
	}
	c.logger.Info("fetched roster", "team_id", teamID, "groups", len(roster.Athletes))
	return &roster, nil
}

// --------------------------------------------------------------------------
// Schedule
// --------------------------------------------------------------------------

// Schedule is the typed /teams/{id}/schedule response.
type Schedule struct {
	Events []Event  `json:"events"`
	Team   TeamInfo `json:"team"`
}

// GetTeamSchedule fetches a team's schedule, optionally for a season year.
func (c *Client) GetTeamSchedule(ctx context.Context, teamID string, season int) (*Schedule, error) {
	params := url.Values{}
	if season > 0 {
		params.Set("season", strconv.Itoa(season))
	}
	var sched Schedule
	path := "/teams/" + teamID + "/schedule"
	if err := c.get(ctx, path, params, &sched); err != nil {
		return nil, err
	}
	c.logger.Info("fetched schedule", "team_id", teamID, "games", len(sched.Events))
	return &sched, nil
}

// --------------------------------------------------------------------------
// Standings
// --------------------------------------------------------------------------

// Standings is the typed /standings response: conferences as children, each
// holding division standings entries.
type Standings struct {
	Children []StandingsGroup `json:"children"`
}

type StandingsGroup struct {
	Name      string `json:"name"`
	Standings struct {
		Entries []StandingsEntry `json:"entries"`
	} `json:"standings"`
}

type StandingsEntry struct {
	Team  TeamInfo `json:"team"`
	Stats []struct {
		Name  string  `json:"name"`
		Value float64 `json:"value"`
	} `json:"stats"`
}

// GetStandings fetches NFL standings, optionally for a season year.
func (c *Client) GetStandings(ctx context.Context, season int) (*Standings, error) {
	params := url.Values{}
	if season > 0 {
		params.Set("season", strconv.Itoa(season))
	}
	var st Standings
	if err := c.get(ctx, "/standings", params, &st); err != nil {
		return nil, err
	}
	c.logger.Info("fetched standings", "groups", len(st.Children))
	return &st, nil
}
