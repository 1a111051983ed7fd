package ragmesh

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ragmesh/ragmesh/agent"
	"github.com/ragmesh/ragmesh/core"
	"github.com/ragmesh/ragmesh/evaluation"
	"github.com/ragmesh/ragmesh/memory"
	"github.com/ragmesh/ragmesh/model"
	"github.com/ragmesh/ragmesh/tool"
)

func TestRunAndScoreWithRetrieval(t *testing.T) {
	snippet := "NVIDIA reported total revenue of $60.9 billion for fiscal 2024."
	search := tool.NewFunctionTool("web_search", "search",
		map[string]any{"type": "object", "properties": map[string]any{"query": map[string]any{"type": "string"}}},
		func(_ *core.ToolContext, _ map[string]any) (any, error) { return snippet, nil })

	llm := model.NewScriptedModel("m").
		AddToolCall("web_search", map[string]any{"query": "nvidia revenue 2024"}).
		AddText("NVIDIA's 2024 revenue was $60.9 billion.")

	worker := agent.NewWorker("researcher", llm, func(o *agent.WorkerOptions) {
		o.Tools = tool.NewRegistry(search)
	})

	judge := model.NewScriptedModel("judge").
		AddText(`{"score": 1.0}`).
		AddText(`{"score": 0.9}`).
		AddText(`{"score": 0.8}`)

	outcome, err := RunAndScore(context.Background(), worker, evaluation.NewEvaluator(judge), "What was NVIDIA total revenue in 2024?")
	require.NoError(t, err)

	assert.Contains(t, outcome.Answer, "$60.9 billion")
	assert.False(t, outcome.StepLimited)

	// Retrieval happened, so the full metric set ran on the observations.
	require.Len(t, outcome.Scores, 3)
	assert.Contains(t, outcome.Scores, "faithfulness")
	assert.Contains(t, outcome.Scores, "answer_relevancy")
	assert.Contains(t, outcome.Scores, "context_recall")
}

func TestRunAndScoreDirectAnswer(t *testing.T) {
	llm := model.NewScriptedModel("m").AddText("Paris.")
	worker := agent.NewWorker("assistant", llm)

	judge := model.NewScriptedModel("judge").AddText(`{"score": 0.95}`)

	outcome, err := RunAndScore(context.Background(), worker, evaluation.NewEvaluator(judge), "Capital of France?")
	require.NoError(t, err)

	// No retrieval: only relevancy is judged.
	require.Len(t, outcome.Scores, 1)
	assert.Contains(t, outcome.Scores, "answer_relevancy")
}

func TestRunAndScoreArchivesEpisode(t *testing.T) {
	llm := model.NewScriptedModel("m").AddText("Paris.")
	worker := agent.NewWorker("assistant", llm)
	judge := model.NewScriptedModel("judge").AddText(`{"score": 0.95}`)
	store := memory.NewInMemoryStore()

	outcome, err := RunAndScore(context.Background(), worker, evaluation.NewEvaluator(judge), "Capital of France?",
		func(o *RunOptions) { o.Store = store })
	require.NoError(t, err)

	rec, ok := store.Get(outcome.Trace.EpisodeID)
	require.True(t, ok)
	assert.Equal(t, "assistant", rec.Agent)
	assert.Equal(t, "Capital of France?", rec.Question)
	assert.Equal(t, "Paris.", rec.Answer)
	assert.Equal(t, 0.95, rec.Scores["answer_relevancy"])
}

func TestRunAndScoreWithoutEvaluator(t *testing.T) {
	llm := model.NewScriptedModel("m").AddText("done")
	worker := agent.NewWorker("assistant", llm)

	outcome, err := RunAndScore(context.Background(), worker, nil, "q")
	require.NoError(t, err)
	assert.Equal(t, "done", outcome.Answer)
	assert.Nil(t, outcome.Scores)
}
