package chat_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/furiabot/furiabot/internal/chat"
	"github.com/furiabot/furiabot/internal/log"
	"github.com/furiabot/furiabot/internal/testutil"
)

func TestFlowName(t *testing.T) {
	assert.Equal(t, "furiabot/chat", chat.FlowName)
}

func setupFlow(t *testing.T, mock *testutil.MockLLM) *chat.Flow {
	t.Helper()

	chat.ResetFlowForTesting()
	t.Cleanup(chat.ResetFlowForTesting)

	g := genkit.Init(context.Background())
	mock.RegisterModel(g)

	tool := genkit.DefineTool(g, "noop", "does nothing",
		func(_ *ai.ToolContext, _ struct{}) (string, error) { return "ok", nil })

	agent, err := chat.New(chat.Config{
		Genkit:      g,
		Logger:      log.NewNop(),
		Tools:       []ai.Tool{tool},
		ModelName:   "mock/test-model",
		MaxTurns:    5,
		TurnTimeout: 30 * time.Second,
		TeamName:    "FURIA Esports",
	})
	require.NoError(t, err)

	flow, err := chat.InitFlow(g, agent)
	require.NoError(t, err)

	return flow
}

func TestInitFlow_OnlyOnce(t *testing.T) {
	mock := testutil.NewMockLLM("ok")
	flow := setupFlow(t, mock)
	require.NotNil(t, flow)

	_, err := chat.InitFlow(nil, nil)
	assert.Error(t, err)

	assert.Same(t, flow, chat.GetFlow())
}

func TestFlow_Run(t *testing.T) {
	mock := testutil.NewMockLLM("fallback")
	mock.AddResponse("próximo jogo", "O próximo jogo é amanhã.")
	flow := setupFlow(t, mock)

	out, err := flow.Run(context.Background(), chat.Input{Message: "quando é o próximo jogo?"})
	require.NoError(t, err)
	assert.Equal(t, "O próximo jogo é amanhã.", out.Reply)
}

func TestFlow_AbsorbsGenerationError(t *testing.T) {
	mock := testutil.NewMockLLM("fallback")
	mock.AddError("explode", errors.New("upstream unavailable"))
	flow := setupFlow(t, mock)

	out, err := flow.Run(context.Background(), chat.Input{Message: "explode now"})
	require.NoError(t, err)
	assert.Contains(t, out.Reply, "I'm sorry")
}
