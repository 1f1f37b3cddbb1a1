package esports

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/furiabot/furiabot/internal/log"
)

// newTestClient points a Client at a stub statistics API.
func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := NewClient(Config{
		BaseURL:    srv.URL,
		Token:      "test-token",
		TeamSlug:   "furia",
		Logger:     log.NewNop(),
		HTTPClient: srv.Client(),
	})
	if err != nil {
		t.Fatalf("NewClient() error: %v", err)
	}
	return c
}

func TestNewClient_RequiredFields(t *testing.T) {
	if _, err := NewClient(Config{TeamSlug: "furia", Logger: log.NewNop()}); err == nil {
		t.Error("NewClient(no base URL) expected error")
	}
	if _, err := NewClient(Config{BaseURL: "http://x", Logger: log.NewNop()}); err == nil {
		t.Error("NewClient(no team slug) expected error")
	}
	if _, err := NewClient(Config{BaseURL: "http://x", TeamSlug: "furia"}); err == nil {
		t.Error("NewClient(no logger) expected error")
	}
}

func TestRoster(t *testing.T) {
	var gotPath, gotAuth string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`[
			{"name":"yuurih","role":"starter"},
			{"name":"sidde","role":"coach"},
			{"name":"","role":"starter"},
			{"name":"mystery"}
		]`))
	})

	players, err := c.Roster(context.Background())
	if err != nil {
		t.Fatalf("Roster() error: %v", err)
	}

	if gotPath != "/teams/furia/players" {
		t.Errorf("request path = %q, want /teams/furia/players", gotPath)
	}
	if gotAuth != "Bearer test-token" {
		t.Errorf("Authorization = %q, want bearer token", gotAuth)
	}

	// Client returns raw entries; filtering belongs to the adapter layer.
	if len(players) != 4 {
		t.Fatalf("Roster() returned %d players, want 4", len(players))
	}
	if players[0].Name != "yuurih" || players[0].Role != RoleStarter {
		t.Errorf("players[0] = %+v, want yuurih/starter", players[0])
	}
	if players[3].Role != "" {
		t.Errorf("players[3].Role = %q, want empty", players[3].Role)
	}
}

func TestUpcomingMatches(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/teams/furia/matches/upcoming" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(`[
			{"id":11,"scheduled_at":1700000000000,"event":"IEM","team1":"FURIA","team2":"NAVI"},
			{"id":12,"scheduled_at":1800000000000,"event":"Major","team1":"FURIA","team2":"MIBR"}
		]`))
	})

	matches, err := c.UpcomingMatches(context.Background())
	if err != nil {
		t.Fatalf("UpcomingMatches() error: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("UpcomingMatches() returned %d matches, want 2", len(matches))
	}
	if matches[0].ID != 11 || matches[0].ScheduledAt != 1700000000000 {
		t.Errorf("matches[0] = %+v", matches[0])
	}
}

func TestRecentResults_OptionalScores(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[
			{"id":9,"played_at":1690000000000,"team1":"FURIA","team2":"MIBR","team1_score":13,"team2_score":9},
			{"id":8,"played_at":1680000000000,"team1":"FURIA","team2":"NAVI","outcome":"walkover"}
		]`))
	})

	results, err := c.RecentResults(context.Background())
	if err != nil {
		t.Fatalf("RecentResults() error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("RecentResults() returned %d results, want 2", len(results))
	}
	if results[0].Team1Score == nil || *results[0].Team1Score != 13 {
		t.Errorf("results[0].Team1Score = %v, want 13", results[0].Team1Score)
	}
	if results[1].Team1Score != nil || results[1].Outcome != "walkover" {
		t.Errorf("results[1] = %+v, want nil scores and walkover outcome", results[1])
	}
}

func TestGet_UnexpectedStatus(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	})

	_, err := c.Roster(context.Background())
	if !errors.Is(err, ErrUnexpectedStatus) {
		t.Errorf("Roster() error = %v, want ErrUnexpectedStatus", err)
	}
}

func TestGet_MalformedBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"not":"a list"`))
	})

	if _, err := c.RecentResults(context.Background()); err == nil {
		t.Error("RecentResults(malformed body) expected error")
	}
}
