package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	mcpSdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/furiabot/furiabot/internal/esports"
	"github.com/furiabot/furiabot/internal/mcp"
	"github.com/furiabot/furiabot/internal/tools"
	"github.com/furiabot/furiabot/internal/wiki"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the lookup tools over the Model Context Protocol (stdio)",
	RunE: func(_ *cobra.Command, _ []string) error {
		return runMCP()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

// runMCP starts the MCP server on stdio transport.
//
// Only the lookup clients are wired; no model provider is needed, so
// this command runs without an AI API key.
func runMCP() error {
	cfg, logger, err := loadConfigAndLogger()
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logger.Info("starting MCP server", "version", Version)

	stats, err := esports.NewClient(esports.Config{
		BaseURL:  cfg.StatsBaseURL,
		Token:    cfg.StatsToken,
		TeamSlug: cfg.TeamSlug,
		Logger:   logger,
	})
	if err != nil {
		return fmt.Errorf("creating stats client: %w", err)
	}

	wikiClient, err := wiki.NewClient(wiki.Config{
		Language: cfg.WikiLanguage,
		Logger:   logger,
	})
	if err != nil {
		return fmt.Errorf("creating wiki client: %w", err)
	}

	kit, err := tools.NewKit(tools.KitConfig{
		Stats:  stats,
		Wiki:   wikiClient,
		Logger: logger,
	})
	if err != nil {
		return fmt.Errorf("creating tool kit: %w", err)
	}

	server, err := mcp.NewServer(mcp.Config{
		Name:    "furiabot",
		Version: Version,
		Kit:     kit,
	})
	if err != nil {
		return fmt.Errorf("creating MCP server: %w", err)
	}

	logger.Info("MCP server ready", "transport", "stdio")

	if err := server.Run(ctx, &mcpSdk.StdioTransport{}); err != nil {
		return fmt.Errorf("MCP server error: %w", err)
	}

	logger.Info("MCP server shut down gracefully")
	return nil
}
