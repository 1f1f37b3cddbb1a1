package tools

// ToolError is a structured error the model can read and act on.
// Adapters put lookup failures here instead of failing the tool call,
// so the model always receives a well-formed result.
type ToolError struct {
	Message string `json:"message"`
}

// Error implements the error interface.
func (e *ToolError) Error() string {
	if e == nil {
		return "<nil ToolError>"
	}
	return e.Message
}

// PlayerInfo is one roster entry as presented to the model.
type PlayerInfo struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

// MatchInfo is one scheduled match as presented to the model.
type MatchInfo struct {
	ID          int64  `json:"id"`
	Event       string `json:"event"`
	Team1       string `json:"team1"`
	Team2       string `json:"team2"`
	ScheduledAt string `json:"scheduled_at"`
}

// ResultInfo is one finished match as presented to the model.
// Score is "n1-n2" when both scores are known, the outcome label when
// only that is known, and "N/A" otherwise.
type ResultInfo struct {
	ID       int64  `json:"id"`
	Team1    string `json:"team1"`
	Team2    string `json:"team2"`
	Score    string `json:"score"`
	PlayedAt string `json:"played_at"`
}

// RosterOutput is the result of the roster tool.
// Exactly one of Players or Error is populated.
type RosterOutput struct {
	Players []PlayerInfo `json:"players,omitempty"`
	Error   *ToolError   `json:"error,omitempty"`
}

// MatchesOutput is the result of the upcoming matches tool.
// Matches may be empty when nothing is scheduled; Error is only set
// when the lookup itself failed.
type MatchesOutput struct {
	Matches []MatchInfo `json:"matches,omitempty"`
	Error   *ToolError  `json:"error,omitempty"`
}

// ResultsOutput is the result of the recent results tool.
type ResultsOutput struct {
	Results []ResultInfo `json:"results,omitempty"`
	Error   *ToolError   `json:"error,omitempty"`
}

// SummaryOutput is the result of the encyclopedia summary tool.
type SummaryOutput struct {
	Title   string     `json:"title,omitempty"`
	Summary string     `json:"summary,omitempty"`
	URL     string     `json:"url,omitempty"`
	Error   *ToolError `json:"error,omitempty"`
}

// RosterInput defines input for the team roster tool (no input needed).
type RosterInput struct{}

// CountInput defines input for the match listing tools.
type CountInput struct {
	Count int `json:"count,omitempty" jsonschema_description:"Maximum entries to return (default: 5)"`
}

// SummaryInput defines input for the encyclopedia summary tool.
type SummaryInput struct {
	SearchTerm string `json:"search_term" jsonschema_description:"The term to look up, e.g. a team, player, or tournament name"`
}
