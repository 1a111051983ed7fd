package agent

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/ragmesh/ragmesh/core"
	"github.com/ragmesh/ragmesh/logging"
	"github.com/ragmesh/ragmesh/model"
	"github.com/ragmesh/ragmesh/tool"
)

// planPrompt asks the model to re-evaluate strategy without offering tools,
// so a planning turn can never consume the step budget.
const planPrompt = "Review the conversation so far and write a short plan for solving the task: " +
	"what facts are still missing, and which tool calls (if any) should come next. " +
	"Do not call any tools now, just write the plan."

// WorkerOptions configures a Worker instance.
//
// Use functional options with NewWorker to override defaults.
type WorkerOptions struct {
	// Description explains what this agent is good at. It is surfaced to
	// manager models when the worker joins a team.
	Description string
	// Instruction is the system prompt. Defaults to a generic tool-calling
	// assistant prompt built from the agent name.
	Instruction Instruction
	// Tools the model may call, in registration order.
	Tools *tool.Registry
	// MaxSteps bounds the number of action/observation cycles per episode.
	MaxSteps int
	// PlanningInterval inserts a re-planning model turn every N action steps.
	// Zero disables re-planning.
	PlanningInterval int
	// Logger receives structured step/tool/model events.
	Logger logging.Logger
}

// RunResult is the outcome of one episode.
type RunResult struct {
	// Answer is the agent's final answer text.
	Answer string
	// StepLimited is true when the episode ended by exhausting MaxSteps
	// rather than by the model producing a final answer. Callers should
	// treat a step-limited answer as lower-confidence.
	StepLimited bool
	// Trace is the ordered record of the episode's plan/action/final steps.
	Trace *core.Trace
}

// Worker iteratively decides whether to call a tool or produce a final
// answer, bounded by MaxSteps. Each Run call is an independent episode; a
// Worker holds no mutable state across runs and is safe to reuse.
type Worker struct {
	BaseAgent
	llm              model.Model
	instruction      Instruction
	tools            *tool.Registry
	maxSteps         int
	planningInterval int
	logger           logging.Logger
}

// NewWorker creates a tool-calling agent with sensible defaults:
// empty tool set, 6 step budget, no re-planning, no-op logger.
func NewWorker(name string, llm model.Model, optFns ...func(o *WorkerOptions)) *Worker {
	opts := WorkerOptions{
		Instruction: NewInstructionFromText(fmt.Sprintf(
			"You are %s, an expert assistant who can solve any task using tool calls. "+
				"Use your tools to gather the information you need, then reply with a final answer. "+
				"Call at most one tool per turn and base your answer only on observed results.", name)),
		MaxSteps: 6,
		Logger:   logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Tools == nil {
		opts.Tools = tool.NewRegistry()
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}
	if opts.MaxSteps <= 0 {
		opts.MaxSteps = 6
	}

	base := NewBaseAgent(name)
	if opts.Description != "" {
		base.SetDescription(opts.Description)
	}

	return &Worker{
		BaseAgent:        base,
		llm:              llm,
		instruction:      opts.Instruction,
		tools:            opts.Tools,
		maxSteps:         opts.MaxSteps,
		planningInterval: opts.PlanningInterval,
		logger:           opts.Logger,
	}
}

// Tools returns the worker's tool registry.
func (w *Worker) Tools() *tool.Registry { return w.tools }

// MaxSteps returns the episode step budget.
func (w *Worker) MaxSteps() int { return w.maxSteps }

// Run executes one episode: Planning -> Acting -> Observing loops until the
// model produces a final answer (Done) or the step budget is exhausted
// (StepLimitExceeded). Exhaustion is not an error; the last assistant text is
// returned with RunResult.StepLimited set.
//
// Tool failures never abort an episode: they are folded into the
// conversation as observation text. Model/endpoint failures do abort and are
// returned wrapped.
func (w *Worker) Run(ctx context.Context, question string) (*RunResult, error) {
	trace := core.NewTrace(w.Name(), question)

	instructions, err := w.instruction.Resolve(question)
	if err != nil {
		return nil, fmt.Errorf("resolve instructions: %w", err)
	}

	w.logger.Info("agent.run.start",
		"agent", w.Name(),
		"episode", trace.EpisodeID,
		"max_steps", w.maxSteps,
	)

	contents := []core.Content{core.NewUserText(question)}
	lastText := ""

	for step := 1; step <= w.maxSteps; step++ {
		if w.planningInterval > 0 && (step-1)%w.planningInterval == 0 {
			plan, err := w.plan(ctx, instructions, contents)
			if err != nil {
				return nil, err
			}
			trace.Append(core.Step{Kind: core.StepPlan, Plan: plan})
			contents = append(contents, core.NewAssistantText("Plan:\n"+plan))
			w.logger.Debug("agent.step.plan", "agent", w.Name(), "step", step, "plan", plan)
		}

		resp, err := w.llm.Generate(ctx, model.Request{
			Instructions: instructions,
			Contents:     contents,
			Tools:        w.tools.Definitions(),
		})
		if err != nil {
			return nil, fmt.Errorf("model call failed at step %d: %w", step, err)
		}

		content := ensureCallIDs(resp.Content)
		calls := content.FunctionCalls()

		if len(calls) == 0 {
			answer := content.Text()
			trace.Append(core.Step{Kind: core.StepFinal, Answer: answer})
			w.logger.Info("agent.run.done",
				"agent", w.Name(),
				"episode", trace.EpisodeID,
				"steps", step,
			)
			return &RunResult{Answer: answer, Trace: trace}, nil
		}

		if text := content.Text(); text != "" {
			lastText = text
		}
		contents = append(contents, content)

		observation := core.Content{Role: "tool"}
		for _, fc := range calls {
			obs := w.invokeTool(ctx, fc)
			trace.Append(core.Step{
				Kind:        core.StepAction,
				ToolName:    fc.Name,
				Arguments:   fc.Arguments,
				Observation: obs,
			})
			observation.Parts = append(observation.Parts, core.FunctionResponsePart{
				FunctionResponse: core.FunctionResponse{
					ID:      fc.ID,
					Name:    fc.Name,
					Content: obs,
				},
			})
			w.logger.Info("agent.step.action",
				"agent", w.Name(),
				"step", step,
				"tool", fc.Name,
			)
		}
		contents = append(contents, observation)
	}

	trace.Append(core.Step{Kind: core.StepFinal, Answer: lastText})
	w.logger.Warn("agent.run.step_limit",
		"agent", w.Name(),
		"episode", trace.EpisodeID,
		"max_steps", w.maxSteps,
	)
	return &RunResult{Answer: lastText, StepLimited: true, Trace: trace}, nil
}

// plan performs a re-planning model turn with no tools offered.
func (w *Worker) plan(ctx context.Context, instructions string, contents []core.Content) (string, error) {
	planContents := make([]core.Content, len(contents), len(contents)+1)
	copy(planContents, contents)
	planContents = append(planContents, core.NewUserText(planPrompt))

	resp, err := w.llm.Generate(ctx, model.Request{
		Instructions: instructions,
		Contents:     planContents,
	})
	if err != nil {
		return "", fmt.Errorf("planning call failed: %w", err)
	}
	return resp.Content.Text(), nil
}

// invokeTool resolves and executes one tool call, always returning an
// observation string. Unknown tools, bad arguments and tool errors all
// become text the model can reason about.
func (w *Worker) invokeTool(ctx context.Context, fc core.FunctionCall) string {
	t, ok := w.tools.Get(fc.Name)
	if !ok {
		return fmt.Sprintf("Error: unknown tool %q. Available tools: %v", fc.Name, w.tools.Names())
	}

	args := map[string]any{}
	if fc.Arguments != "" {
		if err := json.Unmarshal([]byte(fc.Arguments), &args); err != nil {
			return fmt.Sprintf("Error: invalid arguments for tool %s: %v", fc.Name, err)
		}
	}

	toolCtx := core.NewToolContext(ctx, w.logger, fc.ID)
	result, err := t.Call(toolCtx, args)
	if err != nil {
		return fmt.Sprintf("Error executing tool %s: %v", fc.Name, err)
	}

	switch v := result.(type) {
	case string:
		return v
	default:
		raw, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(raw)
	}
}

// ensureCallIDs assigns ids to function calls that arrived without one, so
// call and response parts stay correlated through provider round-trips.
func ensureCallIDs(c core.Content) core.Content {
	for i, p := range c.Parts {
		if fc, ok := p.(core.FunctionCallPart); ok && fc.FunctionCall.ID == "" {
			fc.FunctionCall.ID = uuid.NewString()
			c.Parts[i] = fc
		}
	}
	return c
}
