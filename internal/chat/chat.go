// Package chat implements the conversational agent behind the bot.
//
// The agent is stateless: every request is a single user message that
// goes through one model invocation with the lookup tools attached.
// The model drives the tool loop internally, bounded by a turn limit
// and a per-request timeout.
package chat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"
)

const (
	// FallbackResponseMessage is returned when the model produces an
	// empty response with no tool requests.
	FallbackResponseMessage = "I apologize, but I couldn't generate a response. Please try rephrasing your question."

	// apologyMessage opens the reply when generation itself fails.
	apologyMessage = "I'm sorry, I ran into a problem answering that"
)

// Response represents the complete result of an agent execution.
type Response struct {
	FinalText    string            // model's final text output
	ToolRequests []*ai.ToolRequest // tool requests made during execution
}

// StreamCallback is called for each chunk of streaming response.
// Return an error to abort the stream.
type StreamCallback func(ctx context.Context, chunk *ai.ModelResponseChunk) error

// Config contains all required parameters for the Agent.
type Config struct {
	Genkit *genkit.Genkit
	Logger *slog.Logger
	Tools  []ai.Tool // pre-registered tools from tools.Kit.Register

	ModelName   string
	Temperature float32
	MaxTurns    int           // maximum agentic loop turns
	TurnTimeout time.Duration // per-request generation deadline
	TeamName    string        // team the system prompt is built around
}

// validate checks if all required parameters are present.
func (cfg Config) validate() error {
	if cfg.Genkit == nil {
		return errors.New("genkit instance is required")
	}
	if cfg.Logger == nil {
		return errors.New("logger is required")
	}
	if len(cfg.Tools) == 0 {
		return errors.New("at least one tool is required")
	}
	if cfg.ModelName == "" {
		return errors.New("model name is required")
	}
	if cfg.TeamName == "" {
		return errors.New("team name is required")
	}
	return nil
}

// Agent is the bot's conversational core.
//
// Agent is stateless and uses dependency injection. All configuration
// values are captured immutably at construction time to ensure
// thread-safe concurrent access.
type Agent struct {
	modelName   string
	temperature float32
	maxTurns    int
	turnTimeout time.Duration
	system      string

	g         *genkit.Genkit
	logger    *slog.Logger
	tools     []ai.Tool
	toolRefs  []ai.ToolRef // cached at construction for ai.WithTools
	toolNames string       // cached as comma-separated for logging
}

// New creates an Agent with required configuration.
func New(cfg Config) (*Agent, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	maxTurns := cfg.MaxTurns
	if maxTurns <= 0 {
		maxTurns = 5
	}
	turnTimeout := cfg.TurnTimeout
	if turnTimeout <= 0 {
		turnTimeout = 90 * time.Second
	}

	// Cache tool refs and names at construction.
	toolRefs := make([]ai.ToolRef, len(cfg.Tools))
	names := make([]string, len(cfg.Tools))
	for i, t := range cfg.Tools {
		toolRefs[i] = t
		names[i] = t.Name()
	}

	a := &Agent{
		modelName:   cfg.ModelName,
		temperature: cfg.Temperature,
		maxTurns:    maxTurns,
		turnTimeout: turnTimeout,
		system:      systemPrompt(cfg.TeamName),

		g:         cfg.Genkit,
		logger:    cfg.Logger,
		tools:     cfg.Tools,
		toolRefs:  toolRefs,
		toolNames: strings.Join(names, ", "),
	}

	a.logger.Info("chat agent initialized",
		"model", a.modelName,
		"totalTools", len(a.tools),
		"maxTurns", a.maxTurns,
	)

	return a, nil
}

// Execute runs the agent with the given message (non-streaming).
// This is a convenience wrapper around ExecuteStream with nil callback.
func (a *Agent) Execute(ctx context.Context, message string) (*Response, error) {
	return a.ExecuteStream(ctx, message, nil)
}

// ExecuteStream runs the agent with optional streaming output.
// If callback is non-nil, it is called for each chunk as it is generated.
// The final response is always returned after generation completes.
func (a *Agent) ExecuteStream(ctx context.Context, message string, callback StreamCallback) (*Response, error) {
	streaming := callback != nil
	a.logger.Debug("executing chat agent",
		"streaming", streaming,
		"messageLength", len(message),
	)

	genCtx, cancel := context.WithTimeout(ctx, a.turnTimeout)
	defer cancel()

	opts := []ai.GenerateOption{
		ai.WithModelName(a.modelName),
		ai.WithSystem(a.system),
		ai.WithMessages(ai.NewUserMessage(ai.NewTextPart(message))),
		ai.WithTools(a.toolRefs...),
		ai.WithMaxTurns(a.maxTurns),
		ai.WithConfig(map[string]any{"temperature": a.temperature}),
	}
	if callback != nil {
		opts = append(opts, ai.WithStreaming(ai.ModelStreamCallback(callback)))
	}

	start := time.Now()
	resp, err := genkit.Generate(genCtx, a.g, opts...)
	if err != nil {
		return nil, fmt.Errorf("generation failed: %w", err)
	}

	responseText := strings.TrimSpace(resp.Text())

	// Only apply the fallback when truly empty: no text AND no tool
	// requests. Empty text alongside tool requests is valid agentic
	// behavior mid-loop.
	if responseText == "" && len(resp.ToolRequests()) == 0 {
		a.logger.Warn("model returned empty response with no tool requests")
		responseText = FallbackResponseMessage
	}

	a.logger.Debug("chat agent finished",
		"duration", time.Since(start),
		"responseLength", len(responseText),
	)

	return &Response{
		FinalText:    responseText,
		ToolRequests: resp.ToolRequests(),
	}, nil
}

// Reply answers a single user message and always returns presentable
// text. Generation failures are absorbed into an apologetic reply that
// carries the underlying error, so callers can hand the string straight
// to the user.
func (a *Agent) Reply(ctx context.Context, message string) string {
	resp, err := a.Execute(ctx, message)
	if err != nil {
		a.logger.Error("chat execution failed", "error", err)
		return fmt.Sprintf("%s: %v", apologyMessage, err)
	}
	return resp.FinalText
}
