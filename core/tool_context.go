package core

import (
	"context"

	"github.com/ragmesh/ragmesh/logging"
)

// ToolContext is the per-invocation handle passed to tools. It carries the
// request context, a guaranteed non-nil logger and the function call ID that
// correlates a model's call request with the emitted response.
type ToolContext struct {
	ctx            context.Context
	logger         logging.Logger
	functionCallID string
}

// NewToolContext constructs a ToolContext. A nil logger is replaced with a
// NoOpLogger so tools never need to nil-check.
func NewToolContext(ctx context.Context, logger logging.Logger, functionCallID string) *ToolContext {
	if ctx == nil {
		ctx = context.Background()
	}
	if logger == nil {
		logger = logging.NoOpLogger{}
	}
	return &ToolContext{ctx: ctx, logger: logger, functionCallID: functionCallID}
}

// Context returns the request context for outbound calls made by the tool.
func (tc *ToolContext) Context() context.Context { return tc.ctx }

// Logger returns the structured logger.
func (tc *ToolContext) Logger() logging.Logger { return tc.logger }

// FunctionCallID returns the id of the originating function call.
func (tc *ToolContext) FunctionCallID() string { return tc.functionCallID }
