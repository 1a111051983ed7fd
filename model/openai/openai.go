// Package openai adapts any OpenAI-compatible chat-completions endpoint
// (OpenAI itself, ollama, ramalama, vLLM, ...) to the generic model.Model
// interface, including function/tool calling.
package openai

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/ragmesh/ragmesh/config"
	"github.com/ragmesh/ragmesh/core"
	"github.com/ragmesh/ragmesh/model"
)

// Options configure sampling behavior of the adapter. Endpoint identity
// (model id, base URL, key, context length) comes from config.Model instead.
type Options struct {
	Temperature         float64
	MaxCompletionTokens int64
}

// Model wraps the OpenAI Chat Completions API behind model.Model.
type Model struct {
	client openai.Client
	cfg    config.Model
	opts   Options
}

// New creates an adapter for the endpoint described by cfg. The
// configuration is validated up front; in particular a missing ContextLength
// is rejected here rather than silently inheriting the runtime's (usually
// undersized) default window.
func New(cfg config.Model, optFns ...func(o *Options)) (*Model, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	opts := Options{
		Temperature:         0.7,
		MaxCompletionTokens: 4096,
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	client := openai.NewClient(
		option.WithBaseURL(cfg.BaseURL),
		option.WithAPIKey(cfg.APIKey),
	)

	return &Model{client: client, cfg: cfg, opts: opts}, nil
}

// Generate implements model.Model with a single blocking completion call.
func (m *Model) Generate(ctx context.Context, req model.Request) (*model.Response, error) {
	params := openai.ChatCompletionNewParams{
		Messages:            convertContents(req),
		Model:               m.cfg.ModelID,
		Temperature:         openai.Float(m.opts.Temperature),
		MaxCompletionTokens: openai.Int(m.opts.MaxCompletionTokens),
		Tools:               convertTools(req.Tools),
	}

	resp, err := m.client.Chat.Completions.New(ctx, params,
		// Local runtimes (ollama, ramalama) read the context window size from
		// this non-standard field; hosted endpoints ignore it.
		option.WithJSONSet("num_ctx", m.cfg.ContextLength),
	)
	if err != nil {
		return nil, fmt.Errorf("openai api error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("openai api: no choices returned")
	}

	choice := resp.Choices[0]
	return &model.Response{
		ID:           resp.ID,
		Content:      convertChoice(choice),
		FinishReason: string(choice.FinishReason),
		Usage: &model.TokenUsage{
			PromptTokens:     int(resp.Usage.PromptTokens),
			CompletionTokens: int(resp.Usage.CompletionTokens),
			TotalTokens:      int(resp.Usage.TotalTokens),
		},
	}, nil
}

// convertContents maps the normalized transcript onto OpenAI chat messages.
// Transcripts are well formed by construction (tool contents directly follow
// the assistant turn that issued the calls), so each content converts in
// place: tool contents become one ToolMessage per response part, keyed by
// call id.
func convertContents(req model.Request) []openai.ChatCompletionMessageParamUnion {
	var messages []openai.ChatCompletionMessageParamUnion
	if req.Instructions != "" {
		messages = append(messages, openai.SystemMessage(req.Instructions))
	}

	for _, c := range req.Contents {
		switch c.Role {
		case "system":
			messages = append(messages, openai.SystemMessage(c.Text()))
		case "assistant":
			messages = append(messages, assistantMessage(c))
		case "tool":
			for _, p := range c.Parts {
				if fr, ok := p.(core.FunctionResponsePart); ok {
					messages = append(messages, openai.ToolMessage(fr.FunctionResponse.Content, fr.FunctionResponse.ID))
				}
			}
		default:
			// user and anything unrecognized
			if text := c.Text(); text != "" {
				messages = append(messages, openai.UserMessage(text))
			}
		}
	}
	return messages
}

// assistantMessage renders an assistant turn, carrying its tool calls when
// present.
func assistantMessage(c core.Content) openai.ChatCompletionMessageParamUnion {
	calls := c.FunctionCalls()
	if len(calls) == 0 {
		return openai.AssistantMessage(c.Text())
	}

	toolCalls := make([]openai.ChatCompletionMessageToolCallParam, len(calls))
	for i, fc := range calls {
		toolCalls[i] = openai.ChatCompletionMessageToolCallParam{
			ID:   fc.ID,
			Type: "function",
			Function: openai.ChatCompletionMessageToolCallFunctionParam{
				Name:      fc.Name,
				Arguments: fc.Arguments,
			},
		}
	}
	return openai.ChatCompletionMessageParamUnion{OfAssistant: &openai.ChatCompletionAssistantMessageParam{
		Role:      "assistant",
		ToolCalls: toolCalls,
	}}
}

func convertTools(defs []model.ToolDefinition) []openai.ChatCompletionToolParam {
	if len(defs) == 0 {
		return nil
	}
	tools := make([]openai.ChatCompletionToolParam, len(defs))
	for i, def := range defs {
		tools[i] = openai.ChatCompletionToolParam{
			Type: "function",
			Function: openai.FunctionDefinitionParam{
				Name:        def.Function.Name,
				Description: openai.String(def.Function.Description),
				Parameters:  def.Function.Parameters,
			},
		}
	}
	return tools
}

// convertChoice turns the first completion choice back into normalized parts.
func convertChoice(choice openai.ChatCompletionChoice) core.Content {
	parts := make([]core.Part, 0, len(choice.Message.ToolCalls)+1)
	if choice.Message.Content != "" {
		parts = append(parts, core.TextPart{Text: choice.Message.Content})
	}
	for _, tc := range choice.Message.ToolCalls {
		parts = append(parts, core.FunctionCallPart{FunctionCall: core.FunctionCall{
			ID:        tc.ID,
			Name:      tc.Function.Name,
			Arguments: tc.Function.Arguments,
		}})
	}
	return core.Content{Role: "assistant", Parts: parts}
}

// Info returns metadata describing this adapter.
func (m *Model) Info() model.Info {
	return model.Info{
		Name:          m.cfg.ModelID,
		Provider:      "openai",
		SupportsTools: true,
	}
}
