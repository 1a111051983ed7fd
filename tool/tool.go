// Package tool implements the function calling subsystem that lets agents
// invoke structured capabilities (web search, geolocation, computations) with
// schema validated arguments and consistent error handling.
//
// Tools that talk to external providers follow one rule above all others:
// provider failures are absorbed into a human-readable result string instead
// of an error, so the calling agent can reason about the failure in natural
// language and decide whether to retry, fall back or report it. An error
// return is reserved for programming mistakes (bad arguments, unknown tool).
package tool

import (
	"fmt"

	"github.com/ragmesh/ragmesh/core"
	"github.com/ragmesh/ragmesh/internal/util"
)

// Tool is a callable capability offered to a model. Implementations must be
// read-only after construction so a single instance can serve concurrent
// episodes, and must absorb provider failures into result strings.
type Tool interface {
	// Name identifies the tool in function call declarations and routing.
	// snake_case by convention.
	Name() string

	// Description is shown to the model so it can decide when to call the
	// tool.
	Description() string

	// Parameters is the JSON schema for the tool's arguments.
	Parameters() map[string]any

	// Call runs the tool with already-decoded arguments.
	Call(toolCtx *core.ToolContext, args map[string]any) (any, error)
}

// ValidationError reports an argument that did not satisfy a tool's schema.
type ValidationError = util.ValidationError

// ToolError is the uniform failure type surfaced by tool invocations.
type ToolError struct {
	Tool    string `json:"tool"`
	Message string `json:"message"`
	Code    string `json:"code"`
	Details any    `json:"details,omitempty"`
}

func (e *ToolError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("tool error [%s] in %s: %s", e.Code, e.Tool, e.Message)
	}
	return fmt.Sprintf("tool error in %s: %s", e.Tool, e.Message)
}

// NewToolError builds a ToolError without details.
func NewToolError(tool, message, code string) *ToolError {
	return &ToolError{
		Tool:    tool,
		Message: message,
		Code:    code,
	}
}
