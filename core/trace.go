package core

import "github.com/google/uuid"

// StepKind categorizes a recorded episode step.
type StepKind string

const (
	// StepPlan is a re-planning step: the agent re-evaluated its overall
	// strategy before selecting the next action.
	StepPlan StepKind = "plan"
	// StepAction is a tool invocation step with its observation.
	StepAction StepKind = "action"
	// StepFinal is the terminal step carrying the final answer.
	StepFinal StepKind = "final"
)

// Step is one entry in an episode trace.
type Step struct {
	Kind        StepKind `json:"kind"`
	Plan        string   `json:"plan,omitempty"`        // Plan text (StepPlan)
	ToolName    string   `json:"tool_name,omitempty"`   // Invoked tool (StepAction)
	Arguments   string   `json:"arguments,omitempty"`   // Raw JSON arguments (StepAction)
	Observation string   `json:"observation,omitempty"` // Tool result text (StepAction)
	Answer      string   `json:"answer,omitempty"`      // Final answer (StepFinal)
}

// Trace is the ordered record of a single agent episode. Unlike the internal
// step memory of the model conversation it is a stable, inspectable contract:
// callers that need the retrieval contexts backing an answer read them from
// here instead of poking at conversation internals.
type Trace struct {
	EpisodeID string `json:"episode_id"`
	Agent     string `json:"agent"`
	Question  string `json:"question"`
	Steps     []Step `json:"steps"`
}

// NewTrace starts an empty trace for one episode.
func NewTrace(agent, question string) *Trace {
	return &Trace{EpisodeID: uuid.NewString(), Agent: agent, Question: question}
}

// Append records a step.
func (t *Trace) Append(s Step) { t.Steps = append(t.Steps, s) }

// Observations returns the ordered tool observations of the episode. These
// are the context strings an evaluation stage scores faithfulness and recall
// against.
func (t *Trace) Observations() []string {
	var obs []string
	for _, s := range t.Steps {
		if s.Kind == StepAction && s.Observation != "" {
			obs = append(obs, s.Observation)
		}
	}
	return obs
}

// ActionCount returns the number of action/observation cycles performed.
func (t *Trace) ActionCount() int {
	n := 0
	for _, s := range t.Steps {
		if s.Kind == StepAction {
			n++
		}
	}
	return n
}
