package espn

import (
	"context"
	"net/http"
	"testing"
)

func TestGetTeams(t *testing.T) {
	body := `{
		"sports": [{"leagues": [{"teams": [
			{"team": {"id": "12", "abbreviation": "KC", "displayName": "Kansas City Chiefs"}},
			{"team": {"id": "30", "abbreviation": "JAX", "displayName": "Jacksonville Jaguars"}}
		]}]}]
	}`
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/teams" {
			t.Errorf("path = %s, want /teams", r.URL.Path)
		}
		w.Write([]byte(body))
	}))

	teams, err := client.GetTeams(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(teams) != 2 {
		t.Fatalf("expected 2 teams, got %d", len(teams))
	}
	if teams[0].ID != "12" || teams[0].Abbreviation != "KC" {
		t.Errorf("unexpected first team: %+v", teams[0])
	}
}

func TestGetTeamsMissingNestingIsShapeError(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"no sports", `{"sports": []}`},
		{"no leagues", `{"sports": [{"leagues": []}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			}))
			if _, err := client.GetTeams(context.Background()); err == nil {
				t.Fatal("expected shape error for missing sports/leagues nesting")
			}
		})
	}
}

func TestGetTeamRoster(t *testing.T) {
	body := `{
		"team": {"id": "12", "abbreviation": "KC"},
		"athletes": [
			{"position": "offense", "items": [
				{"id": "15", "displayName": "Patrick Mahomes",
				 "position": {"abbreviation": "QB"}, "height": 74, "weight": 225}
			]},
			{"position": "specialTeam", "items": []}
		]
	}`
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/teams/12/roster" {
			t.Errorf("path = %s, want /teams/12/roster", r.URL.Path)
		}
		w.Write([]byte(body))
	}))

	roster, err := client.GetTeamRoster(context.Background(), "12")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(roster.Athletes) != 2 {
		t.Fatalf("expected 2 position groups, got %d", len(roster.Athletes))
	}
	qb := roster.Athletes[0].Items[0]
	if qb.ID != "15" || qb.Position.Abbreviation != "QB" || qb.Weight != 225 {
		t.Errorf("unexpected athlete: %+v", qb)
	}
}

func TestGetTeamRosterMissingAthletesIsShapeError(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"team": {"id": "12"}}`))
	}))

	if _, err := client.GetTeamRoster(context.Background(), "12"); err == nil {
		t.Fatal("expected shape error for missing athletes key")
	}
}

func TestGetTeamSchedule(t *testing.T) {
	body := `{
		"team": {"id": "12", "abbreviation": "KC"},
		"events": [
			{"id": "401", "name": "Chiefs at Jaguars"},
			{"id": "402", "name": "Bears at Chiefs"}
		]
	}`
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/teams/12/schedule" {
			t.Errorf("path = %s, want /teams/12/schedule", r.URL.Path)
		}
		if got := r.URL.Query().Get("season"); got != "2023" {
			t.Errorf("season param = %q, want 2023", got)
		}
		w.Write([]byte(body))
	}))

	sched, err := client.GetTeamSchedule(context.Background(), "12", 2023)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sched.Events) != 2 || sched.Team.Abbreviation != "KC" {
		t.Errorf("unexpected schedule: %+v", sched)
	}
}

func TestGetStandings(t *testing.T) {
	body := `{
		"children": [
			{"name": "American Football Conference", "standings": {"entries": [
				{"team": {"displayName": "Kansas City Chiefs"},
				 "stats": [{"name": "wins", "value": 11}, {"name": "losses", "value": 6}]}
			]}},
			{"name": "National Football Conference", "standings": {"entries": []}}
		]
	}`
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/standings" {
			t.Errorf("path = %s, want /standings", r.URL.Path)
		}
		w.Write([]byte(body))
	}))

	st, err := client.GetStandings(context.Background(), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(st.Children) != 2 {
		t.Fatalf("expected 2 conferences, got %d", len(st.Children))
	}
	afc := st.Children[0]
	if afc.Name != "American Football Conference" || len(afc.Standings.Entries) != 1 {
		t.Errorf("unexpected conference: %+v", afc)
	}
	if afc.Standings.Entries[0].Stats[0].Name != "wins" || afc.Standings.Entries[0].Stats[0].Value != 11 {
		t.Errorf("unexpected stats: %+v", afc.Standings.Entries[0].Stats)
	}
}
