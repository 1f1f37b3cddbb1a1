// Package tools provides the Genkit lookup tools backing the chat agent.
//
// Each tool wraps one external lookup (team roster, upcoming matches,
// recent results, encyclopedia summary) behind a stable result shape.
// Lookup failures are encoded in the result's Error field rather than
// returned as Go errors, so the model always receives something it can
// phrase an answer from.
package tools

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"

	"github.com/furiabot/furiabot/internal/esports"
	"github.com/furiabot/furiabot/internal/wiki"
)

// Tool names registered with Genkit.
const (
	// TeamRosterName is the Genkit tool name for the active roster lookup.
	TeamRosterName = "getTeamRoster"
	// UpcomingMatchesName is the Genkit tool name for the scheduled matches lookup.
	UpcomingMatchesName = "getUpcomingMatches"
	// RecentResultsName is the Genkit tool name for the finished matches lookup.
	RecentResultsName = "getRecentResults"
	// WikiSummaryName is the Genkit tool name for the encyclopedia lookup.
	WikiSummaryName = "getWikiSummary"
)

// defaultCount is the match listing size when the model omits or
// zeroes the count argument. maxCount caps model-supplied counts; the
// input is not trusted to be sane.
const (
	defaultCount = 5
	maxCount     = 25
)

// clampCount normalizes a model-supplied listing size.
func clampCount(count int) int {
	if count <= 0 {
		return defaultCount
	}
	if count > maxCount {
		return maxCount
	}
	return count
}

// StatsSource defines the team statistics lookups the kit depends on.
type StatsSource interface {
	Roster(ctx context.Context) ([]esports.Player, error)
	UpcomingMatches(ctx context.Context) ([]esports.Match, error)
	RecentResults(ctx context.Context) ([]esports.Result, error)
}

// SummarySource defines the encyclopedia lookup the kit depends on.
type SummarySource interface {
	Summary(ctx context.Context, searchTerm string) (*wiki.Summary, error)
}

// KitConfig holds all required dependencies for Kit.
type KitConfig struct {
	Stats  StatsSource
	Wiki   SummarySource
	Logger *slog.Logger
}

// Kit provides the lookup tools handed to the chat agent.
type Kit struct {
	stats  StatsSource
	wiki   SummarySource
	logger *slog.Logger
	now    func() time.Time
}

// Option is a functional option for configuring optional Kit features.
type Option func(*Kit)

// WithClock overrides the time source used for the future-match filter.
// Intended for tests.
func WithClock(now func() time.Time) Option {
	return func(k *Kit) {
		k.now = now
	}
}

// NewKit creates a tool kit with all required dependencies.
func NewKit(cfg KitConfig, opts ...Option) (*Kit, error) {
	if cfg.Stats == nil {
		return nil, errors.New("KitConfig.Stats is required")
	}
	if cfg.Wiki == nil {
		return nil, errors.New("KitConfig.Wiki is required")
	}
	if cfg.Logger == nil {
		return nil, errors.New("KitConfig.Logger is required")
	}

	kit := &Kit{
		stats:  cfg.Stats,
		wiki:   cfg.Wiki,
		logger: cfg.Logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(kit)
	}

	return kit, nil
}

// Register registers all kit tools with Genkit and returns them in
// registration order.
func (k *Kit) Register(g *genkit.Genkit) ([]ai.Tool, error) {
	if g == nil {
		return nil, errors.New("genkit instance is required")
	}

	toolset := []ai.Tool{
		genkit.DefineTool(g, TeamRosterName,
			"Get the team's current active lineup: starters, substitutes, and coaching staff. "+
				"Use this for any question about who plays for the team right now.",
			k.TeamRoster),

		genkit.DefineTool(g, UpcomingMatchesName,
			"Get the team's next scheduled matches, soonest first. "+
				"Returns event name, both team names, and the scheduled time. "+
				"Use this for questions about when or against whom the team plays next.",
			k.UpcomingMatches),

		genkit.DefineTool(g, RecentResultsName,
			"Get the team's most recently finished matches, newest first, with scores. "+
				"Use this for questions about how the team has been performing or who won a recent game.",
			k.RecentResults),

		genkit.DefineTool(g, WikiSummaryName,
			"Look up an encyclopedia summary for a team, player, tournament, or game title. "+
				"Returns a short summary paragraph and the source URL. "+
				"Use this for background and history questions the statistics tools cannot answer.",
			k.WikiSummary),
	}

	k.logger.Info("lookup tools registered", "count", len(toolset))
	return toolset, nil
}

// TeamRoster returns the active roster. Entries with a blank name or an
// unknown role are dropped; a roster that ends up empty is reported as
// an error so the model does not present an empty lineup as fact.
func (k *Kit) TeamRoster(ctx *ai.ToolContext, _ RosterInput) (RosterOutput, error) {
	players, err := k.stats.Roster(ctx.Context)
	if err != nil {
		k.logger.Warn("roster lookup failed", "error", err)
		return RosterOutput{Error: &ToolError{Message: "roster lookup failed, data source unavailable"}}, nil
	}

	out := make([]PlayerInfo, 0, len(players))
	for _, p := range players {
		if p.Name == "" || !p.Role.Valid() {
			continue
		}
		out = append(out, PlayerInfo{Name: p.Name, Role: string(p.Role)})
	}

	if len(out) == 0 {
		return RosterOutput{Error: &ToolError{Message: "no roster information is currently available"}}, nil
	}

	return RosterOutput{Players: out}, nil
}

// UpcomingMatches returns scheduled matches that have not started yet,
// capped at the requested count. An empty list is a valid answer.
func (k *Kit) UpcomingMatches(ctx *ai.ToolContext, input CountInput) (MatchesOutput, error) {
	matches, err := k.stats.UpcomingMatches(ctx.Context)
	if err != nil {
		k.logger.Warn("upcoming matches lookup failed", "error", err)
		return MatchesOutput{Error: &ToolError{Message: "upcoming matches lookup failed, data source unavailable"}}, nil
	}

	count := clampCount(input.Count)

	nowMillis := k.now().UnixMilli()
	out := make([]MatchInfo, 0, min(count, len(matches)))
	for _, m := range matches {
		if m.ScheduledAt <= nowMillis {
			continue
		}
		out = append(out, MatchInfo{
			ID:          m.ID,
			Event:       m.Event,
			Team1:       m.Team1,
			Team2:       m.Team2,
			ScheduledAt: formatMillis(m.ScheduledAt),
		})
		if len(out) == count {
			break
		}
	}

	return MatchesOutput{Matches: out}, nil
}

// RecentResults returns the most recently finished matches, capped at
// the requested count.
func (k *Kit) RecentResults(ctx *ai.ToolContext, input CountInput) (ResultsOutput, error) {
	results, err := k.stats.RecentResults(ctx.Context)
	if err != nil {
		k.logger.Warn("recent results lookup failed", "error", err)
		return ResultsOutput{Error: &ToolError{Message: "recent results lookup failed, data source unavailable"}}, nil
	}

	count := clampCount(input.Count)
	if len(results) > count {
		results = results[:count]
	}

	out := make([]ResultInfo, 0, len(results))
	for _, r := range results {
		out = append(out, ResultInfo{
			ID:       r.ID,
			Team1:    r.Team1,
			Team2:    r.Team2,
			Score:    score(r),
			PlayedAt: formatMillis(r.PlayedAt),
		})
	}

	return ResultsOutput{Results: out}, nil
}

// WikiSummary looks up an encyclopedia summary for the given term.
// A missing page is reported with the term in the message so the model
// can tell the user what was not found.
func (k *Kit) WikiSummary(ctx *ai.ToolContext, input SummaryInput) (SummaryOutput, error) {
	if input.SearchTerm == "" {
		return SummaryOutput{Error: &ToolError{Message: "search_term is required"}}, nil
	}

	summary, err := k.wiki.Summary(ctx.Context, input.SearchTerm)
	if err != nil {
		if errors.Is(err, wiki.ErrPageNotFound) {
			return SummaryOutput{Error: &ToolError{
				Message: fmt.Sprintf("no encyclopedia page found for %q", input.SearchTerm),
			}}, nil
		}
		k.logger.Warn("encyclopedia lookup failed", "term", input.SearchTerm, "error", err)
		return SummaryOutput{Error: &ToolError{Message: "encyclopedia lookup failed, data source unavailable"}}, nil
	}

	return SummaryOutput{
		Title:   summary.Title,
		Summary: summary.Extract,
		URL:     summary.URL,
	}, nil
}

// score renders a finished match's score line.
func score(r esports.Result) string {
	if r.Team1Score != nil && r.Team2Score != nil {
		return fmt.Sprintf("%d-%d", *r.Team1Score, *r.Team2Score)
	}
	if r.Outcome != "" {
		return r.Outcome
	}
	return "N/A"
}

// formatMillis renders an epoch-milliseconds timestamp as RFC 3339 UTC.
func formatMillis(millis int64) string {
	return time.UnixMilli(millis).UTC().Format(time.RFC3339)
}
