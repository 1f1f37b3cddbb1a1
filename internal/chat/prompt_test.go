package chat

import (
	"strings"
	"testing"
)

func TestSystemPrompt(t *testing.T) {
	prompt := systemPrompt("FURIA Esports")

	wantFragments := []string{
		"FURIA Esports",
		"getTeamRoster",
		"getUpcomingMatches",
		"getRecentResults",
		"getWikiSummary",
		// Lookup data renders as lists, encyclopedia answers as prose
		// with the source cited.
		"as a short list",
		"as prose",
		"cite the source URL",
		"Never quote the error message",
	}
	for _, want := range wantFragments {
		if !strings.Contains(prompt, want) {
			t.Errorf("systemPrompt() missing %q", want)
		}
	}
}
