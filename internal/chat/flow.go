package chat

import (
	"context"
	"fmt"
	"sync"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/core"
	"github.com/firebase/genkit/go/genkit"
)

// Input is the input for the chat Flow.
type Input struct {
	Message string `json:"message"`
}

// Output is the output for the chat Flow.
type Output struct {
	Reply string `json:"reply"`
}

// StreamChunk is the streaming output type for the chat Flow.
// Each chunk contains partial text that can be displayed immediately.
type StreamChunk struct {
	Text string `json:"text"`
}

// FlowName is the registered name of the chat Flow in Genkit.
const FlowName = "furiabot/chat"

// Flow is the type alias for the chat agent's Genkit streaming Flow.
// Exported for use in the api package.
type Flow = core.Flow[Input, Output, StreamChunk]

// Package-level singleton for the Flow to prevent panic on
// re-registration. sync.Once ensures the Flow is defined only once,
// even across tests.
var (
	flowOnce     sync.Once
	flow         *Flow
	flowInitDone bool
)

// InitFlow initializes the chat Flow singleton.
// Must be called exactly once during application startup.
func InitFlow(g *genkit.Genkit, agent *Agent) (*Flow, error) {
	var initialized bool
	flowOnce.Do(func() {
		flow = agent.DefineFlow(g)
		flowInitDone = true
		initialized = true
	})
	if !initialized && flowInitDone {
		return nil, fmt.Errorf("InitFlow called more than once")
	}
	return flow, nil
}

// GetFlow returns the initialized Flow singleton.
// Panics if InitFlow was not called - this indicates a programming error.
func GetFlow() *Flow {
	if !flowInitDone {
		panic("GetFlow called before InitFlow")
	}
	return flow
}

// ResetFlowForTesting resets the Flow singleton for testing.
// WARNING: Only use in tests. Not safe for concurrent use.
func ResetFlowForTesting() {
	flowOnce = sync.Once{}
	flow = nil
	flowInitDone = false
}

// DefineFlow defines the Genkit streaming Flow for the chat agent.
//
// IMPORTANT: Use InitFlow/GetFlow instead of calling DefineFlow
// directly. DefineFlow registers a global Flow; calling it twice panics.
//
// The Flow is a lightweight wrapper: Agent.ExecuteStream contains the
// core logic. Generation failures are absorbed into an apologetic
// Output rather than returned as Flow errors, so stream consumers
// always receive a well-formed reply.
func (a *Agent) DefineFlow(g *genkit.Genkit) *Flow {
	return genkit.DefineStreamingFlow(g, FlowName,
		func(ctx context.Context, input Input, streamCb func(context.Context, StreamChunk) error) (Output, error) {
			var agentCallback StreamCallback
			if streamCb != nil {
				agentCallback = func(ctx context.Context, chunk *ai.ModelResponseChunk) error {
					if chunk == nil {
						return nil
					}
					for _, part := range chunk.Content {
						if part.Text != "" {
							if streamErr := streamCb(ctx, StreamChunk{Text: part.Text}); streamErr != nil {
								return streamErr
							}
						}
					}
					return nil
				}
			}

			resp, err := a.ExecuteStream(ctx, input.Message, agentCallback)
			if err != nil {
				a.logger.Error("chat flow execution failed", "error", err)
				return Output{Reply: fmt.Sprintf("%s: %v", apologyMessage, err)}, nil
			}

			return Output{Reply: resp.FinalText}, nil
		},
	)
}
