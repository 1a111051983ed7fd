package model

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ragmesh/ragmesh/core"
)

func TestScriptedModelReplaysInOrder(t *testing.T) {
	m := NewScriptedModel("test").
		AddToolCall("web_search", map[string]any{"query": "nvidia revenue"}).
		AddText("done")

	resp, err := m.Generate(context.Background(), Request{Contents: []core.Content{core.NewUserText("q")}})
	require.NoError(t, err)
	calls := resp.Content.FunctionCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, "web_search", calls[0].Name)
	assert.JSONEq(t, `{"query":"nvidia revenue"}`, calls[0].Arguments)
	assert.Equal(t, "tool_calls", resp.FinishReason)

	resp, err = m.Generate(context.Background(), Request{})
	require.NoError(t, err)
	assert.Equal(t, "done", resp.Content.Text())

	// Script exhausted.
	_, err = m.Generate(context.Background(), Request{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exhausted")

	assert.Len(t, m.Requests(), 3)
}

func TestScriptedModelLoop(t *testing.T) {
	m := NewScriptedModel("loop").Loop().AddText("again")

	for i := 0; i < 5; i++ {
		resp, err := m.Generate(context.Background(), Request{})
		require.NoError(t, err)
		assert.Equal(t, "again", resp.Content.Text())
	}
}

func TestScriptedModelContextCancelled(t *testing.T) {
	m := NewScriptedModel("c").AddText("x")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := m.Generate(ctx, Request{})
	assert.ErrorIs(t, err, context.Canceled)
}
