package agent

import (
	"fmt"

	"github.com/ragmesh/ragmesh/core"
	"github.com/ragmesh/ragmesh/model"
	"github.com/ragmesh/ragmesh/tool"
)

// Manager is a Worker that may additionally delegate sub-tasks to named
// subordinate agents. Each subordinate is surfaced to the model as a
// delegate_<name> tool; invoking it runs the subordinate's own episode
// synchronously (bounded by the subordinate's step budget) and folds its
// final answer into the manager's conversation exactly like a tool result.
// Subordinates run strictly one at a time, in the order the model chooses.
type Manager struct {
	Worker
	subordinates []Runner
}

// NewManager creates a manager agent over the given subordinates. Options
// are the usual Worker options; the provided tool registry (if any) is
// copied and extended with one delegate tool per subordinate, so the
// caller's registry is never mutated.
func NewManager(name string, llm model.Model, subordinates []Runner, optFns ...func(o *WorkerOptions)) *Manager {
	opts := WorkerOptions{
		Instruction: NewInstructionFromText(managerInstruction(name, subordinates)),
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	registry := tool.NewRegistry()
	if opts.Tools != nil {
		for _, t := range opts.Tools.Tools() {
			registry.Register(t)
		}
	}
	for _, sub := range subordinates {
		registry.Register(&delegateTool{target: sub})
	}
	opts.Tools = registry

	worker := NewWorker(name, llm, func(o *WorkerOptions) { *o = opts })

	return &Manager{Worker: *worker, subordinates: subordinates}
}

// Subordinates returns the subordinate agents in registration order.
func (m *Manager) Subordinates() []Runner {
	subs := make([]Runner, len(m.subordinates))
	copy(subs, m.subordinates)
	return subs
}

// FindSubordinate returns the subordinate with the given name, or nil.
func (m *Manager) FindSubordinate(name string) Runner {
	for _, sub := range m.subordinates {
		if sub.Name() == name {
			return sub
		}
	}
	return nil
}

func managerInstruction(name string, subordinates []Runner) string {
	text := fmt.Sprintf(
		"You are %s, a manager agent. You can solve parts of a task yourself with your tools, "+
			"or delegate self-contained sub-tasks to your team using the delegate_* tools. "+
			"Delegate one sub-task at a time, wait for the result, and combine all findings into a final answer.\n\nYour team:", name)
	for _, sub := range subordinates {
		text += fmt.Sprintf("\n- %s: %s", sub.Name(), sub.Description())
	}
	return text
}

// delegateTool exposes one subordinate agent as a callable tool.
type delegateTool struct {
	target Runner
}

// Name implements tool.Tool.
func (d *delegateTool) Name() string { return "delegate_" + d.target.Name() }

// Description implements tool.Tool.
func (d *delegateTool) Description() string {
	return fmt.Sprintf("Delegate a sub-task to the %s agent. %s Provide a complete, standalone task description.",
		d.target.Name(), d.target.Description())
}

// Parameters implements tool.Tool.
func (d *delegateTool) Parameters() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"task": map[string]any{
				"type":        "string",
				"description": "The sub-task for the agent, with all context it needs",
			},
		},
		"required": []string{"task"},
	}
}

// Call implements tool.Tool. It blocks until the subordinate's episode
// completes and returns its final answer as the observation.
func (d *delegateTool) Call(toolCtx *core.ToolContext, args map[string]any) (any, error) {
	task, _ := args["task"].(string)
	if task == "" {
		return nil, tool.NewToolError(d.Name(), "task must be a non-empty string", "VALIDATION_ERROR")
	}

	result, err := d.target.Run(toolCtx.Context(), task)
	if err != nil {
		return nil, tool.NewToolError(d.Name(), fmt.Sprintf("subordinate %s failed: %v", d.target.Name(), err), "EXECUTION_ERROR")
	}
	if result.StepLimited {
		return fmt.Sprintf("[%s hit its step limit; treat this as a partial answer]\n%s", d.target.Name(), result.Answer), nil
	}
	return result.Answer, nil
}
