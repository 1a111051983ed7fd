package agent

import (
	"context"
	"fmt"
)

// Runner is the common contract of runnable agents. A Manager delegates to
// subordinates through this interface, so custom agent implementations can
// be mixed into a hierarchy alongside Workers.
type Runner interface {
	// Name returns the agent's unique, human-readable name.
	Name() string

	// Description explains what the agent is good at. Managers surface it to
	// their model so it can pick the right subordinate for a sub-task.
	Description() string

	// Run executes one complete episode for the given question.
	Run(ctx context.Context, question string) (*RunResult, error)
}

// BaseAgent bundles identity helpers shared by concrete agent
// implementations. Embed it and supply a Run method to satisfy Runner.
type BaseAgent struct {
	name        string
	description string
}

// NewBaseAgent constructs a BaseAgent with a generated description
// (customizable via SetDescription).
func NewBaseAgent(name string) BaseAgent {
	return BaseAgent{
		name:        name,
		description: fmt.Sprintf("Agent %s", name),
	}
}

// Name returns the human-readable name for this agent.
func (b *BaseAgent) Name() string { return b.name }

// Description returns a detailed description of this agent's purpose.
func (b *BaseAgent) Description() string { return b.description }

// SetDescription updates the agent's description.
func (b *BaseAgent) SetDescription(desc string) { b.description = desc }
