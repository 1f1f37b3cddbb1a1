package mcp

import (
	"context"
	"strings"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/furiabot/furiabot/internal/esports"
	"github.com/furiabot/furiabot/internal/log"
	"github.com/furiabot/furiabot/internal/tools"
	"github.com/furiabot/furiabot/internal/wiki"
)

type stubStats struct {
	players []esports.Player
}

func (s *stubStats) Roster(context.Context) ([]esports.Player, error) {
	return s.players, nil
}

func (s *stubStats) UpcomingMatches(context.Context) ([]esports.Match, error) {
	return nil, nil
}

func (s *stubStats) RecentResults(context.Context) ([]esports.Result, error) {
	return nil, nil
}

type stubWiki struct{}

func (stubWiki) Summary(context.Context, string) (*wiki.Summary, error) {
	return nil, wiki.ErrPageNotFound
}

func newStubKit(t *testing.T, stats tools.StatsSource) *tools.Kit {
	t.Helper()

	kit, err := tools.NewKit(tools.KitConfig{
		Stats:  stats,
		Wiki:   stubWiki{},
		Logger: log.NewNop(),
	})
	if err != nil {
		t.Fatalf("NewKit() error = %v", err)
	}
	return kit
}

func TestNewServer_Validation(t *testing.T) {
	kit := newStubKit(t, &stubStats{})

	tests := []struct {
		name string
		cfg  Config
	}{
		{name: "missing name", cfg: Config{Version: "1.0.0", Kit: kit}},
		{name: "missing version", cfg: Config{Name: "furiabot", Kit: kit}},
		{name: "missing kit", cfg: Config{Name: "furiabot", Version: "1.0.0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewServer(tt.cfg); err == nil {
				t.Error("NewServer() expected error, got nil")
			}
		})
	}
}

func TestTeamRoster_SuccessPayload(t *testing.T) {
	stats := &stubStats{players: []esports.Player{
		{Name: "yuurih", Role: esports.RoleStarter},
	}}
	server, err := NewServer(Config{Name: "furiabot", Version: "1.0.0", Kit: newStubKit(t, stats)})
	if err != nil {
		t.Fatalf("NewServer() error = %v", err)
	}

	result, _, err := server.teamRoster(context.Background(), nil, tools.RosterInput{})
	if err != nil {
		t.Fatalf("teamRoster() error = %v", err)
	}
	if result.IsError {
		t.Fatalf("teamRoster() IsError = true, content: %v", result.Content)
	}
	text := result.Content[0].(*mcp.TextContent).Text
	if !strings.Contains(text, "yuurih") {
		t.Errorf("payload %q missing player name", text)
	}
}

func TestTeamRoster_EmptyRosterIsError(t *testing.T) {
	server, err := NewServer(Config{Name: "furiabot", Version: "1.0.0", Kit: newStubKit(t, &stubStats{})})
	if err != nil {
		t.Fatalf("NewServer() error = %v", err)
	}

	result, _, err := server.teamRoster(context.Background(), nil, tools.RosterInput{})
	if err != nil {
		t.Fatalf("teamRoster() error = %v", err)
	}
	if !result.IsError {
		t.Error("teamRoster() expected IsError for empty roster")
	}
}
