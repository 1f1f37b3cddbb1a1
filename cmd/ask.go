package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/furiabot/furiabot/internal/app"
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a single question from the terminal",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAsk(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfigAndLogger()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	a, err := app.Setup(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("initializing application: %w", err)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), closeTimeout)
		defer cancel()
		if closeErr := a.Close(closeCtx); closeErr != nil {
			logger.Warn("shutdown error", "error", closeErr)
		}
	}()

	question := strings.TrimSpace(strings.Join(args, " "))
	if question == "" {
		return fmt.Errorf("question is empty")
	}

	start := time.Now()
	reply := a.Agent.Reply(ctx, question)
	logger.Debug("answered", "duration", time.Since(start))

	fmt.Fprintln(cmd.OutOrStdout(), reply)
	return nil
}
