// Package evaluation scores a generated answer against its question and,
// optionally, the retrieval contexts that backed it. Scoring follows the
// RAGAS metric definitions (faithfulness, answer relevancy, context recall)
// with an LLM judge: each metric prompts a judge model for a verdict in
// [0, 1] and the evaluator assembles the selected metric set into a result
// mapping.
package evaluation

import (
	"context"
	"fmt"

	"github.com/ragmesh/ragmesh/logging"
	"github.com/ragmesh/ragmesh/model"
)

// Sample is one question/answer pair to score, optionally with the ordered
// context strings the answer was generated from.
type Sample struct {
	Question string
	Answer   string
	Contexts []string
}

// Result maps metric name to score in [0, 1].
type Result map[string]float64

// Metric scores one quality dimension of a sample using a judge model.
type Metric interface {
	// Name returns the metric identifier used as the Result key.
	Name() string

	// Score judges the sample, returning a value in [0, 1].
	Score(ctx context.Context, judge model.Model, sample Sample) (float64, error)
}

// Options configures an Evaluator.
type Options struct {
	Logger logging.Logger
}

// Evaluator selects and runs the metric set appropriate for a sample.
type Evaluator struct {
	judge  model.Model
	logger logging.Logger
}

// NewEvaluator constructs an evaluator over the given judge model. The judge
// typically needs a real credential; callers are expected to check that
// precondition at startup, before any agent work begins.
func NewEvaluator(judge model.Model, optFns ...func(o *Options)) *Evaluator {
	opts := Options{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}
	return &Evaluator{judge: judge, logger: opts.Logger}
}

// Evaluate scores the sample. Without contexts only answer relevancy can be
// judged; with contexts the full set {faithfulness, answer_relevancy,
// context_recall} runs. The result contains exactly the keys of the selected
// metric set. Any metric failure aborts the evaluation; there is no partial
// result or retry.
func (e *Evaluator) Evaluate(ctx context.Context, sample Sample) (Result, error) {
	if sample.Question == "" {
		return nil, fmt.Errorf("evaluation: sample question is empty")
	}
	if sample.Answer == "" {
		return nil, fmt.Errorf("evaluation: sample answer is empty")
	}

	metrics := []Metric{AnswerRelevancy()}
	if len(sample.Contexts) > 0 {
		metrics = []Metric{Faithfulness(), AnswerRelevancy(), ContextRecall()}
	}

	return e.Run(ctx, sample, metrics...)
}

// Run scores the sample with an explicit metric set.
func (e *Evaluator) Run(ctx context.Context, sample Sample, metrics ...Metric) (Result, error) {
	result := make(Result, len(metrics))
	for _, m := range metrics {
		score, err := m.Score(ctx, e.judge, sample)
		if err != nil {
			return nil, fmt.Errorf("metric %s: %w", m.Name(), err)
		}
		e.logger.Info("evaluation.metric.scored",
			"metric", m.Name(),
			"score", score,
			"judge", e.judge.Info().Name,
		)
		result[m.Name()] = score
	}
	return result, nil
}
