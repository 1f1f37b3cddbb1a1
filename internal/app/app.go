// Package app provides application initialization and dependency wiring.
//
// App is the container that assembles all components: Genkit with the
// model provider plugin, the two lookup clients, the tool kit, the chat
// agent, and its Flow. Call Close to release resources.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/firebase/genkit/go/genkit"
	"github.com/firebase/genkit/go/plugins/googlegenai"

	"github.com/furiabot/furiabot/internal/chat"
	"github.com/furiabot/furiabot/internal/config"
	"github.com/furiabot/furiabot/internal/esports"
	"github.com/furiabot/furiabot/internal/observability"
	"github.com/furiabot/furiabot/internal/tools"
	"github.com/furiabot/furiabot/internal/wiki"
)

// App is the core application container.
type App struct {
	Config *config.Config
	Logger *slog.Logger

	Genkit *genkit.Genkit
	Stats  *esports.Client
	Wiki   *wiki.Client
	Kit    *tools.Kit
	Agent  *chat.Agent
	Flow   *chat.Flow

	otelShutdown func(context.Context) error
}

// Setup creates and initializes the application.
// Returns an App with embedded cleanup; call Close to release.
func Setup(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	if cfg == nil {
		return nil, config.ErrConfigNil
	}
	if logger == nil {
		return nil, errors.New("logger is required")
	}

	// The googlegenai plugin reads the key from the environment; fail
	// fast here with a clear error instead of on the first chat turn.
	if os.Getenv("GEMINI_API_KEY") == "" && os.Getenv("GOOGLE_API_KEY") == "" {
		return nil, fmt.Errorf("%w: set GEMINI_API_KEY", config.ErrMissingAPIKey)
	}

	a := &App{Config: cfg, Logger: logger}

	// Tracing must be wired before Genkit initialization so the
	// TracerProvider is ready when the first span is created.
	if cfg.Tracing.Enabled {
		shutdown, err := observability.Setup(ctx, observability.Config{
			AgentHost:   cfg.Tracing.AgentHost,
			Environment: cfg.Tracing.Environment,
			ServiceName: cfg.Tracing.ServiceName,
		}, logger)
		if err != nil {
			return nil, fmt.Errorf("setting up tracing: %w", err)
		}
		a.otelShutdown = shutdown
	}

	a.Genkit = genkit.Init(ctx, genkit.WithPlugins(&googlegenai.GoogleAI{}))

	stats, err := esports.NewClient(esports.Config{
		BaseURL:  cfg.StatsBaseURL,
		Token:    cfg.StatsToken,
		TeamSlug: cfg.TeamSlug,
		Logger:   logger,
	})
	if err != nil {
		return nil, fmt.Errorf("creating stats client: %w", err)
	}
	a.Stats = stats

	wikiClient, err := wiki.NewClient(wiki.Config{
		Language: cfg.WikiLanguage,
		Logger:   logger,
	})
	if err != nil {
		return nil, fmt.Errorf("creating wiki client: %w", err)
	}
	a.Wiki = wikiClient

	kit, err := tools.NewKit(tools.KitConfig{
		Stats:  stats,
		Wiki:   wikiClient,
		Logger: logger,
	})
	if err != nil {
		return nil, fmt.Errorf("creating tool kit: %w", err)
	}
	a.Kit = kit

	registered, err := kit.Register(a.Genkit)
	if err != nil {
		return nil, fmt.Errorf("registering tools: %w", err)
	}

	agent, err := chat.New(chat.Config{
		Genkit:      a.Genkit,
		Logger:      logger,
		Tools:       registered,
		ModelName:   cfg.ModelName,
		Temperature: cfg.Temperature,
		MaxTurns:    cfg.MaxTurns,
		TurnTimeout: cfg.TurnTimeout,
		TeamName:    cfg.TeamName,
	})
	if err != nil {
		return nil, fmt.Errorf("creating chat agent: %w", err)
	}
	a.Agent = agent

	flow, err := chat.InitFlow(a.Genkit, agent)
	if err != nil {
		return nil, fmt.Errorf("initializing chat flow: %w", err)
	}
	a.Flow = flow

	logger.Info("application initialized",
		"model", cfg.ModelName,
		"team", cfg.TeamName,
		"tracing", cfg.Tracing.Enabled,
	)

	return a, nil
}

// Close gracefully shuts down all resources, flushing pending trace
// spans.
func (a *App) Close(ctx context.Context) error {
	a.Logger.Info("shutting down application")

	if a.otelShutdown != nil {
		if err := a.otelShutdown(ctx); err != nil {
			return fmt.Errorf("flushing traces: %w", err)
		}
	}
	return nil
}
