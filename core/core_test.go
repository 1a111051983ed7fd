package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContentText(t *testing.T) {
	c := Content{Role: "assistant", Parts: []Part{
		TextPart{Text: "hello "},
		FunctionCallPart{FunctionCall: FunctionCall{Name: "web_search"}},
		TextPart{Text: "world"},
	}}
	assert.Equal(t, "hello world", c.Text())
}

func TestContentFunctionCalls(t *testing.T) {
	c := Content{Role: "assistant", Parts: []Part{
		FunctionCallPart{FunctionCall: FunctionCall{ID: "fc1", Name: "web_search", Arguments: `{"query":"x"}`}},
		TextPart{Text: "thinking"},
		FunctionCallPart{FunctionCall: FunctionCall{ID: "fc2", Name: "get_location"}},
	}}
	calls := c.FunctionCalls()
	assert.Len(t, calls, 2)
	assert.Equal(t, "web_search", calls[0].Name)
	assert.Equal(t, "fc2", calls[1].ID)

	assert.Empty(t, NewUserText("q").FunctionCalls())
}

func TestTraceObservations(t *testing.T) {
	tr := NewTrace("researcher", "what is x?")
	assert.NotEmpty(t, tr.EpisodeID)

	tr.Append(Step{Kind: StepPlan, Plan: "search first"})
	tr.Append(Step{Kind: StepAction, ToolName: "web_search", Observation: "snippet one"})
	tr.Append(Step{Kind: StepAction, ToolName: "web_search", Observation: "snippet two"})
	tr.Append(Step{Kind: StepFinal, Answer: "x is y"})

	assert.Equal(t, []string{"snippet one", "snippet two"}, tr.Observations())
	assert.Equal(t, 2, tr.ActionCount())
}

func TestTraceObservationsEmpty(t *testing.T) {
	tr := NewTrace("researcher", "q")
	tr.Append(Step{Kind: StepFinal, Answer: "direct answer"})
	assert.Nil(t, tr.Observations())
	assert.Equal(t, 0, tr.ActionCount())
}
