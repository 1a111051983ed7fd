package model

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/ragmesh/ragmesh/core"
)

// ScriptedModel replays a fixed sequence of responses and records every
// request it receives. It is the workhorse for agent loop tests: scripts can
// mix tool call turns and final answer turns, and assertions can inspect the
// exact conversations the agent sent.
type ScriptedModel struct {
	mu        sync.Mutex
	name      string
	responses []Response
	index     int
	loop      bool
	requests  []Request
}

// NewScriptedModel constructs an empty scripted model.
func NewScriptedModel(name string) *ScriptedModel {
	return &ScriptedModel{name: name}
}

// Loop makes the script wrap around instead of erroring when exhausted.
// Useful for modeling a policy that never terminates (e.g. step limit tests).
func (m *ScriptedModel) Loop() *ScriptedModel {
	m.loop = true
	return m
}

// AddText appends a plain final-answer turn to the script.
func (m *ScriptedModel) AddText(text string) *ScriptedModel {
	return m.AddResponse(Response{
		Content:      core.NewAssistantText(text),
		FinishReason: "stop",
	})
}

// AddToolCall appends a tool call turn to the script. Arguments are
// marshaled to the JSON payload the provider would emit.
func (m *ScriptedModel) AddToolCall(toolName string, args map[string]any) *ScriptedModel {
	raw, _ := json.Marshal(args)
	return m.AddResponse(Response{
		Content: core.Content{
			Role: "assistant",
			Parts: []core.Part{core.FunctionCallPart{FunctionCall: core.FunctionCall{
				ID:        uuid.NewString(),
				Name:      toolName,
				Arguments: string(raw),
			}}},
		},
		FinishReason: "tool_calls",
	})
}

// AddResponse appends an arbitrary response turn to the script.
func (m *ScriptedModel) AddResponse(resp Response) *ScriptedModel {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, resp)
	return m
}

// Requests returns a copy of all requests seen so far, in order.
func (m *ScriptedModel) Requests() []Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	reqs := make([]Request, len(m.requests))
	copy(reqs, m.requests)
	return reqs
}

// Generate implements Model by replaying the next scripted response.
func (m *ScriptedModel) Generate(ctx context.Context, req Request) (*Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.requests = append(m.requests, req)

	if len(m.responses) == 0 {
		return nil, fmt.Errorf("scripted model %s has no responses", m.name)
	}
	if m.index >= len(m.responses) {
		if !m.loop {
			return nil, fmt.Errorf("scripted model %s exhausted after %d responses", m.name, len(m.responses))
		}
		m.index = 0
	}

	resp := m.responses[m.index]
	m.index++
	resp.ID = uuid.NewString()
	return &resp, nil
}

// Info implements Model.
func (m *ScriptedModel) Info() Info {
	return Info{Name: m.name, Provider: "scripted", SupportsTools: true}
}
