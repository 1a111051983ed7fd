package evaluation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ragmesh/ragmesh/model"
)

func TestEvaluateWithoutContexts(t *testing.T) {
	judge := model.NewScriptedModel("judge").AddText(`{"score": 0.8}`)
	ev := NewEvaluator(judge)

	result, err := ev.Evaluate(context.Background(), Sample{
		Question: "What was NVIDIA total revenue in 2024?",
		Answer:   "NVIDIA's total revenue in 2024 was $60.9 billion.",
	})
	require.NoError(t, err)

	// Exactly the answer-relevancy key, nothing else.
	require.Len(t, result, 1)
	assert.Equal(t, 0.8, result["answer_relevancy"])

	// One judge call, with no tool definitions.
	reqs := judge.Requests()
	require.Len(t, reqs, 1)
	assert.Empty(t, reqs[0].Tools)
}

func TestEvaluateWithContexts(t *testing.T) {
	judge := model.NewScriptedModel("judge").
		AddText(`{"score": 1.0}`).
		AddText(`{"score": 0.9}`).
		AddText(`{"score": 0.75}`)
	ev := NewEvaluator(judge)

	result, err := ev.Evaluate(context.Background(), Sample{
		Question: "What was NVIDIA total revenue in 2024?",
		Answer:   "NVIDIA's total revenue in 2024 was $60.9 billion.",
		Contexts: []string{"NVIDIA reported total revenue of $60.9 billion for fiscal 2024."},
	})
	require.NoError(t, err)

	// Exactly the three-metric key set.
	require.Len(t, result, 3)
	assert.Equal(t, 1.0, result["faithfulness"])
	assert.Equal(t, 0.9, result["answer_relevancy"])
	assert.Equal(t, 0.75, result["context_recall"])
}

func TestEvaluateRejectsMalformedSamples(t *testing.T) {
	ev := NewEvaluator(model.NewScriptedModel("judge"))

	_, err := ev.Evaluate(context.Background(), Sample{Answer: "a"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "question")

	_, err = ev.Evaluate(context.Background(), Sample{Question: "q"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "answer")
}

func TestEvaluateJudgeFailurePropagates(t *testing.T) {
	// Script exhausts after the first metric; the second must abort the run.
	judge := model.NewScriptedModel("judge").AddText(`{"score": 1.0}`)
	ev := NewEvaluator(judge)

	_, err := ev.Evaluate(context.Background(), Sample{
		Question: "q",
		Answer:   "a",
		Contexts: []string{"c"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "answer_relevancy")
}

func TestMetricRequiresContexts(t *testing.T) {
	for _, m := range []Metric{Faithfulness(), ContextRecall()} {
		_, err := m.Score(context.Background(), model.NewScriptedModel("judge"), Sample{Question: "q", Answer: "a"})
		require.Error(t, err, m.Name())
		assert.Contains(t, err.Error(), "context")
	}
}

func TestParseScore(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		want    float64
		wantErr bool
	}{
		{"plain", `{"score": 0.5}`, 0.5, false},
		{"fenced", "```json\n{\"score\": 0.25}\n```", 0.25, false},
		{"with prose", `The verdict is {"score": 1.0} as requested.`, 1.0, false},
		{"clamped high", `{"score": 3.0}`, 1.0, false},
		{"clamped low", `{"score": -0.5}`, 0.0, false},
		{"no json", "looks good to me", 0, true},
		{"missing score", `{"verdict": "fine"}`, 0, true},
		{"malformed", `{"score": }`, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseScore(tt.text)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
