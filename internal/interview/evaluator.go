package interview

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonathan/interview-coach/internal/llm"
	"github.com/jonathan/interview-coach/internal/prompts"
)

// resumeFeedbackLimit bounds the resume prefix used when building a
// feedback prompt.
const resumeFeedbackLimit = 1000

// ResponseEvaluator produces feedback for a candidate's answer to the most
// recently asked question. Same degrade-to-content policy as question
// generation.
type ResponseEvaluator interface {
	Evaluate(ctx context.Context, resumeText, question, response string) GenerationResult
}

// Evaluator is the LLM-backed ResponseEvaluator. The prompt requests three
// bullet points (strength, improvement area, actionable tip) as free text;
// the three-part structure is a prompt convention, not a parsed shape.
type Evaluator struct {
	client llm.Client
}

// NewEvaluator wires a response evaluator to an LLM client.
func NewEvaluator(client llm.Client) *Evaluator {
	return &Evaluator{client: client}
}

// Evaluate builds the bounded evaluation prompt and requests feedback.
func (e *Evaluator) Evaluate(ctx context.Context, resumeText, question, response string) GenerationResult {
	template := prompts.MustGet("interview.json", "evaluate-response")
	prompt := prompts.Format(template, map[string]string{
		"Resume":   truncate(resumeText, resumeFeedbackLimit),
		"Question": question,
		"Answer":   response,
	})

	text, err := e.client.GenerateContent(ctx, prompt, llm.TierLite)
	if err != nil {
		return GenerationResult{
			Text:     fmt.Sprintf("Error analyzing response: %v", err),
			Degraded: true,
			Err:      err,
		}
	}
	return GenerationResult{Text: strings.TrimSpace(text)}
}
