package core

import "strings"

// Part is one segment of a conversation turn. The unexported marker keeps
// the set closed to the three kinds the library produces: text, a function
// call, and a function response.
type Part interface{ isPart() }

// TextPart is plain text.
type TextPart struct {
	Text string
}

func (TextPart) isPart() {}

// FunctionCall describes a tool/function invocation request surfaced by a model.
type FunctionCall struct {
	// ID correlates the call with its response across provider round-trips.
	ID string `json:"id,omitempty"`
	// Name is the tool name as it appears in the registry.
	Name string `json:"name"`
	// Arguments is the raw JSON argument payload as emitted by the model.
	Arguments string `json:"arguments,omitempty"`
}

// FunctionCallPart carries a FunctionCall inside a Content.
type FunctionCallPart struct {
	FunctionCall FunctionCall
}

func (FunctionCallPart) isPart() {}

// FunctionResponse carries the textual outcome of a function call back into
// the conversation. Tool failures are folded into Content as human-readable
// text rather than a separate error channel, so the model can reason about
// them in natural language.
type FunctionResponse struct {
	ID      string `json:"id,omitempty"`
	Name    string `json:"name"`
	Content string `json:"content"`
}

// FunctionResponsePart carries a FunctionResponse inside a Content.
type FunctionResponsePart struct {
	FunctionResponse FunctionResponse
}

func (FunctionResponsePart) isPart() {}

// Content is one conversation turn: a role ("user", "assistant", "tool",
// "system") and its ordered parts.
type Content struct {
	Role  string `json:"role,omitempty"`
	Parts []Part `json:"parts"`
}

// NewUserText builds a user-role Content from plain text.
func NewUserText(text string) Content {
	return Content{Role: "user", Parts: []Part{TextPart{Text: text}}}
}

// NewAssistantText builds an assistant-role Content from plain text.
func NewAssistantText(text string) Content {
	return Content{Role: "assistant", Parts: []Part{TextPart{Text: text}}}
}

// Text concatenates all text parts in order.
func (c Content) Text() string {
	var b strings.Builder
	for _, p := range c.Parts {
		if tp, ok := p.(TextPart); ok {
			b.WriteString(tp.Text)
		}
	}
	return b.String()
}

// FunctionCalls extracts all function call parts in order.
func (c Content) FunctionCalls() []FunctionCall {
	var calls []FunctionCall
	for _, p := range c.Parts {
		if fc, ok := p.(FunctionCallPart); ok {
			calls = append(calls, fc.FunctionCall)
		}
	}
	return calls
}
