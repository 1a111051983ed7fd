package evaluation

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ragmesh/ragmesh/core"
	"github.com/ragmesh/ragmesh/model"
)

const judgeInstructions = "You are an impartial evaluation judge for retrieval-augmented generation. " +
	"Read the material, apply the stated criterion strictly, and respond with ONLY a JSON object " +
	`of the form {"score": x} where x is a number between 0.0 and 1.0. No prose, no markdown.`

// judgeMetric implements Metric as a single judge prompt.
type judgeMetric struct {
	name          string
	needsContexts bool
	prompt        func(Sample) string
}

// Faithfulness measures whether every claim in the answer is supported by
// the given contexts. 1.0 means fully grounded, 0.0 means contradicted or
// unsupported throughout.
func Faithfulness() Metric {
	return judgeMetric{
		name:          "faithfulness",
		needsContexts: true,
		prompt: func(s Sample) string {
			return fmt.Sprintf(
				"Criterion: faithfulness. What fraction of the claims in the answer are directly supported "+
					"by the contexts? Penalize every claim that the contexts do not back.\n\n"+
					"Question:\n%s\n\nAnswer:\n%s\n\nContexts:\n%s",
				s.Question, s.Answer, numberedContexts(s.Contexts))
		},
	}
}

// AnswerRelevancy measures how directly the answer addresses the question,
// independent of factual correctness. Evasive, incomplete or off-topic
// answers score low.
func AnswerRelevancy() Metric {
	return judgeMetric{
		name: "answer_relevancy",
		prompt: func(s Sample) string {
			return fmt.Sprintf(
				"Criterion: answer relevancy. How directly and completely does the answer address the "+
					"question? Ignore whether the answer is factually correct; judge only relevance and "+
					"completeness. Penalize redundancy and evasiveness.\n\n"+
					"Question:\n%s\n\nAnswer:\n%s",
				s.Question, s.Answer)
		},
	}
}

// ContextRecall measures whether the contexts contain the information needed
// to produce the answer. 1.0 means the answer is fully derivable from the
// contexts alone.
func ContextRecall() Metric {
	return judgeMetric{
		name:          "context_recall",
		needsContexts: true,
		prompt: func(s Sample) string {
			return fmt.Sprintf(
				"Criterion: context recall. What fraction of the answer's content can be attributed to "+
					"the contexts? Score 1.0 if the contexts alone suffice to produce the answer.\n\n"+
					"Question:\n%s\n\nAnswer:\n%s\n\nContexts:\n%s",
				s.Question, s.Answer, numberedContexts(s.Contexts))
		},
	}
}

// Name implements Metric.
func (m judgeMetric) Name() string { return m.name }

// Score implements Metric with one blocking judge call.
func (m judgeMetric) Score(ctx context.Context, judge model.Model, sample Sample) (float64, error) {
	if m.needsContexts && len(sample.Contexts) == 0 {
		return 0, fmt.Errorf("requires at least one context")
	}

	resp, err := judge.Generate(ctx, model.Request{
		Instructions: judgeInstructions,
		Contents:     []core.Content{core.NewUserText(m.prompt(sample))},
	})
	if err != nil {
		return 0, fmt.Errorf("judge call failed: %w", err)
	}

	return parseScore(resp.Content.Text())
}

func numberedContexts(contexts []string) string {
	var b strings.Builder
	for i, c := range contexts {
		fmt.Fprintf(&b, "[%d] %s\n", i+1, c)
	}
	return b.String()
}

// parseScore extracts the {"score": x} verdict from the judge's reply.
// Judges occasionally wrap the JSON in prose or code fences despite the
// instructions, so parsing starts at the first brace.
func parseScore(text string) (float64, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end <= start {
		return 0, fmt.Errorf("judge returned no JSON verdict: %q", text)
	}

	var verdict struct {
		Score *float64 `json:"score"`
	}
	if err := json.Unmarshal([]byte(text[start:end+1]), &verdict); err != nil {
		return 0, fmt.Errorf("malformed judge verdict %q: %w", text, err)
	}
	if verdict.Score == nil {
		return 0, fmt.Errorf("judge verdict %q is missing a score", text)
	}

	score := *verdict.Score
	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}
	return score, nil
}
