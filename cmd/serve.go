package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/furiabot/furiabot/internal/api"
	"github.com/furiabot/furiabot/internal/app"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP chat API",
	RunE: func(_ *cobra.Command, _ []string) error {
		return runServe()
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config)")
	rootCmd.AddCommand(serveCmd)
}

// closeTimeout bounds the trace flush during shutdown.
const closeTimeout = 10 * time.Second

func runServe() error {
	cfg, logger, err := loadConfigAndLogger()
	if err != nil {
		return err
	}
	if err := cfg.ValidateServe(); err != nil {
		return fmt.Errorf("validating config: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logger.Info("starting furiabot", "version", Version)

	a, err := app.Setup(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("initializing application: %w", err)
	}
	defer func() {
		closeCtx, closeCancel := context.WithTimeout(context.Background(), closeTimeout)
		defer closeCancel()
		if closeErr := a.Close(closeCtx); closeErr != nil {
			logger.Warn("shutdown error", "error", closeErr)
		}
	}()

	addr := serveAddr
	if addr == "" {
		addr = cfg.HTTPAddr
	}

	server, err := api.NewServer(api.ServerConfig{
		Flow:        a.Flow,
		Logger:      logger,
		Addr:        addr,
		CORSOrigins: cfg.CORSOrigins,
		RateBurst:   cfg.RateBurst,
		TrustProxy:  cfg.TrustProxy,
	})
	if err != nil {
		return fmt.Errorf("creating HTTP server: %w", err)
	}

	return server.Run(ctx)
}
