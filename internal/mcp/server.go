// Package mcp exposes the bot's lookup tools over the Model Context
// Protocol, so external MCP clients can query the same roster, match,
// and encyclopedia data the chat agent uses.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/firebase/genkit/go/ai"
	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/furiabot/furiabot/internal/tools"
)

// Server wraps the MCP SDK server around the lookup tool kit.
type Server struct {
	mcpServer *mcp.Server
	kit       *tools.Kit
}

// Config holds MCP server configuration.
type Config struct {
	Name    string
	Version string
	Kit     *tools.Kit
}

// NewServer creates an MCP server with all lookup tools registered.
func NewServer(cfg Config) (*Server, error) {
	if cfg.Name == "" {
		return nil, fmt.Errorf("server name is required")
	}
	if cfg.Version == "" {
		return nil, fmt.Errorf("server version is required")
	}
	if cfg.Kit == nil {
		return nil, fmt.Errorf("tool kit is required")
	}

	s := &Server{
		mcpServer: mcp.NewServer(&mcp.Implementation{
			Name:    cfg.Name,
			Version: cfg.Version,
		}, nil),
		kit: cfg.Kit,
	}

	if err := s.registerTools(); err != nil {
		return nil, fmt.Errorf("failed to register tools: %w", err)
	}

	return s, nil
}

// Run starts the MCP server on the given transport.
// This is a blocking call that handles all MCP protocol communication.
func (s *Server) Run(ctx context.Context, transport mcp.Transport) error {
	return s.mcpServer.Run(ctx, transport)
}

// registerTools registers the four lookup tools to the MCP server.
func (s *Server) registerTools() error {
	rosterSchema, err := jsonschema.For[tools.RosterInput](nil)
	if err != nil {
		return fmt.Errorf("schema for %s: %w", tools.TeamRosterName, err)
	}
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        tools.TeamRosterName,
		Description: "Get the team's current active lineup: starters, substitutes, and coaching staff.",
		InputSchema: rosterSchema,
	}, s.teamRoster)

	countSchema, err := jsonschema.For[tools.CountInput](nil)
	if err != nil {
		return fmt.Errorf("schema for %s: %w", tools.UpcomingMatchesName, err)
	}
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        tools.UpcomingMatchesName,
		Description: "Get the team's next scheduled matches, soonest first.",
		InputSchema: countSchema,
	}, s.upcomingMatches)
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        tools.RecentResultsName,
		Description: "Get the team's most recently finished matches, newest first, with scores.",
		InputSchema: countSchema,
	}, s.recentResults)

	summarySchema, err := jsonschema.For[tools.SummaryInput](nil)
	if err != nil {
		return fmt.Errorf("schema for %s: %w", tools.WikiSummaryName, err)
	}
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        tools.WikiSummaryName,
		Description: "Look up an encyclopedia summary for a team, player, tournament, or game title.",
		InputSchema: summarySchema,
	}, s.wikiSummary)

	return nil
}

func (s *Server) teamRoster(ctx context.Context, _ *mcp.CallToolRequest, input tools.RosterInput) (*mcp.CallToolResult, any, error) {
	out, err := s.kit.TeamRoster(&ai.ToolContext{Context: ctx}, input)
	if err != nil {
		return nil, nil, fmt.Errorf("%s failed: %w", tools.TeamRosterName, err)
	}
	return toCallResult(out, out.Error)
}

func (s *Server) upcomingMatches(ctx context.Context, _ *mcp.CallToolRequest, input tools.CountInput) (*mcp.CallToolResult, any, error) {
	out, err := s.kit.UpcomingMatches(&ai.ToolContext{Context: ctx}, input)
	if err != nil {
		return nil, nil, fmt.Errorf("%s failed: %w", tools.UpcomingMatchesName, err)
	}
	return toCallResult(out, out.Error)
}

func (s *Server) recentResults(ctx context.Context, _ *mcp.CallToolRequest, input tools.CountInput) (*mcp.CallToolResult, any, error) {
	out, err := s.kit.RecentResults(&ai.ToolContext{Context: ctx}, input)
	if err != nil {
		return nil, nil, fmt.Errorf("%s failed: %w", tools.RecentResultsName, err)
	}
	return toCallResult(out, out.Error)
}

func (s *Server) wikiSummary(ctx context.Context, _ *mcp.CallToolRequest, input tools.SummaryInput) (*mcp.CallToolResult, any, error) {
	out, err := s.kit.WikiSummary(&ai.ToolContext{Context: ctx}, input)
	if err != nil {
		return nil, nil, fmt.Errorf("%s failed: %w", tools.WikiSummaryName, err)
	}
	return toCallResult(out, out.Error)
}

// toCallResult builds the MCP response inline: the error variant maps
// to IsError with the user-presentable message, success payloads are
// serialized as JSON text.
func toCallResult(out any, toolErr *tools.ToolError) (*mcp.CallToolResult, any, error) {
	if toolErr != nil {
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: toolErr.Message}},
			IsError: true,
		}, nil, nil
	}

	payload, err := json.Marshal(out)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal tool output: %w", err)
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(payload)}},
	}, nil, nil
}
