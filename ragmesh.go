// Package ragmesh wires the library's pieces into the canonical
// question-answering pattern: construct a model adapter, attach tools to an
// agent (optionally nesting workers under a manager), run an episode, and
// optionally score the outcome against RAGAS-style metrics. Most
// applications use the subpackages directly; this package provides the
// run-then-evaluate convenience shared by the examples.
package ragmesh

import (
	"context"
	"fmt"

	"github.com/ragmesh/ragmesh/agent"
	"github.com/ragmesh/ragmesh/core"
	"github.com/ragmesh/ragmesh/evaluation"
	"github.com/ragmesh/ragmesh/memory"
)

// RunOptions configures RunAndScore.
type RunOptions struct {
	// Store, when set, receives a record of the finished episode including
	// any scores.
	Store memory.Store
}

// Outcome bundles an episode's answer with its evaluation scores.
type Outcome struct {
	// Answer is the agent's final answer.
	Answer string
	// StepLimited mirrors agent.RunResult: true when the episode ended by
	// exhausting its step budget.
	StepLimited bool
	// Trace is the episode's step record.
	Trace *core.Trace
	// Scores holds the metric results, nil when no evaluator was given.
	Scores evaluation.Result
}

// RunAndScore runs one episode and, if an evaluator is provided, scores the
// answer. The episode's tool observations become the evaluation contexts, so
// a run that performed retrieval is scored on faithfulness and recall while
// a direct answer is scored on relevancy alone.
func RunAndScore(ctx context.Context, a agent.Runner, ev *evaluation.Evaluator, question string, optFns ...func(o *RunOptions)) (*Outcome, error) {
	opts := RunOptions{}
	for _, fn := range optFns {
		fn(&opts)
	}

	result, err := a.Run(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("agent %s: %w", a.Name(), err)
	}

	outcome := &Outcome{
		Answer:      result.Answer,
		StepLimited: result.StepLimited,
		Trace:       result.Trace,
	}

	if ev != nil {
		scores, err := ev.Evaluate(ctx, evaluation.Sample{
			Question: question,
			Answer:   result.Answer,
			Contexts: result.Trace.Observations(),
		})
		if err != nil {
			return nil, fmt.Errorf("evaluate answer: %w", err)
		}
		outcome.Scores = scores
	}

	if opts.Store != nil {
		if err := opts.Store.Save(memory.Record{
			EpisodeID:   result.Trace.EpisodeID,
			Agent:       a.Name(),
			Question:    question,
			Answer:      result.Answer,
			StepLimited: result.StepLimited,
			Contexts:    result.Trace.Observations(),
			Scores:      outcome.Scores,
		}); err != nil {
			return nil, fmt.Errorf("archive episode: %w", err)
		}
	}

	return outcome, nil
}
