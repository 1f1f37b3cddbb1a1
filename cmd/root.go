// Package cmd implements the furiabot command line interface.
package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/furiabot/furiabot/internal/config"
	"github.com/furiabot/furiabot/internal/log"
)

var rootCmd = &cobra.Command{
	Use:   "furiabot",
	Short: "furiabot - chat backend for FURIA fans",
	Long: `furiabot is the chat backend powering the FURIA fan assistant.

It answers questions about the team's roster, upcoming matches, recent
results, and history, grounding every answer in live lookups against
the statistics API and the encyclopedia.

Run "furiabot serve" to start the HTTP API, or "furiabot ask" for a
one-shot question from the terminal.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// loadConfigAndLogger loads the configuration and builds the logger the
// subcommands share.
func loadConfigAndLogger() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}

	logger := log.New(log.Config{
		Level: log.ParseLevel(cfg.LogLevel),
		JSON:  cfg.LogJSON,
	})

	return cfg, logger, nil
}
