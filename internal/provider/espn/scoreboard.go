package espn

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"
)

// --------------------------------------------------------------------------
// Scoreboard
// --------------------------------------------------------------------------

// Scoreboard is the typed /scoreboard response.
type Scoreboard struct {
	Events []Event `json:"events"`
	Week   struct {
		Number int `json:"number"`
	} `json:"week"`
	Season struct {
		Year int `json:"year"`
		Type int `json:"type"`
	} `json:"season"`
}

// Event is a single game on the scoreboard.
type Event struct {
	ID           string        `json:"id"`
	Date         string        `json:"date"`
	Name         string        `json:"name"`
	ShortName    string        `json:"shortName"`
	Competitions []Competition `json:"competitions"`
	Status       Status        `json:"status"`
}

type Competition struct {
	ID          string       `json:"id"`
	NeutralSite bool         `json:"neutralSite"`
	Competitors []Competitor `json:"competitors"`
}

type Competitor struct {
	ID       string   `json:"id"`
	HomeAway string   `json:"homeAway"`
	Winner   bool     `json:"winner"`
	Score    string   `json:"score"`
	Team     TeamInfo `json:"team"`
}

type TeamInfo struct {
	ID           string `json:"id"`
	Abbreviation string `json:"abbreviation"`
	DisplayName  string `json:"displayName"`
	Location     string `json:"location"`
	Name         string `json:"name"`
}

type Status struct {
	Type struct {
		Name        string `json:"name"`
		State       string `json:"state"`
		Completed   bool   `json:"completed"`
		Description string `json:"description"`
	} `json:"type"`
}

// GetScoreboard fetches scoreboard data. Zero-valued arguments are omitted:
// season is the year, week the 1-18 week number, date a YYYYMMDD string.
func (c *Client) GetScoreboard(ctx context.Context, season, week int, date string) (*Scoreboard, error) {
	params := url.Values{}
	if season > 0 {
		params.Set("season", strconv.Itoa(season))
	}
	if week > 0 {
		params.Set("week", strconv.Itoa(week))
	}
	if date != "" {
		params.Set("dates", date)
	}

	var sb Scoreboard
	if err := c.get(ctx, "/scoreboard", params, &sb); err != nil {
		return nil, err
	}
	if sb.Events == nil {
		return nil, &FetchError{Endpoint: "/scoreboard", Err: fmt.Errorf("response missing events")}
	}

	c.logger.Info("fetched scoreboard", "games", len(sb.Events), "season", sb.Season.Year, "week", sb.Week.Number)
	return &sb, nil
}

// CurrentWeek determines the current NFL week from the live scoreboard.
func (c *Client) CurrentWeek(ctx context.Context) (int, error) {
	sb, err := c.GetScoreboard(ctx, 0, 0, "")
	if err != nil {
		return 0, err
	}
	if sb.Week.Number == 0 {
		return 1, nil
	}
	return sb.Week.Number, nil
}

// SeasonType returns the current season phase. ESPN codes: 1=preseason,
// 2=regular, 3=postseason; anything else maps to regular.
func (c *Client) SeasonType(ctx context.Context) (string, error) {
	sb, err := c.GetScoreboard(ctx, 0, 0, "")
	if err != nil {
		return "", err
	}
	switch sb.Season.Type {
	case 1:
		return "preseason", nil
	case 3:
		return "postseason", nil
	default:
		return "regular", nil
	}
}

// GamesByDateRange scans the scoreboard one day at a time and collects every
// event. Days that fail to fetch are logged and skipped; pacing between days
// comes from the client limiter.
func (c *Client) GamesByDateRange(ctx context.Context, start, end time.Time) ([]Event, error) {
	var all []Event
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if err := ctx.Err(); err != nil {
			return all, err
		}
		date := d.Format("20060102")
		sb, err := c.GetScoreboard(ctx, 0, 0, date)
		if err != nil {
			c.logger.Warn("skipping date", "date", date, "error", err)
			continue
		}
		all = append(all, sb.Events...)
	}
	c.logger.Info("date range scan complete", "games", len(all),
		"start", start.Format("2006-01-02"), "end", end.Format("2006-01-02"))
	return all, nil
}
