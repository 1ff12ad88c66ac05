package interview

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonathan/interview-coach/internal/llm"
	"github.com/jonathan/interview-coach/internal/prompts"
)

// resumeQuestionLimit bounds the resume prefix used when building a
// question prompt.
const resumeQuestionLimit = 3000

// GenerationResult is the outcome of a question or feedback generation.
// When the underlying generation call fails the failure is encoded as
// human-readable Text (degrade-to-content) and Degraded is set so the engine
// can log the cause without surfacing an error to the caller.
type GenerationResult struct {
	Text     string
	Degraded bool
	Err      error
}

// QuestionGenerator produces the next interview question from resume text
// and the questions already asked. It never fails; see GenerationResult.
type QuestionGenerator interface {
	Generate(ctx context.Context, resumeText string, priorQuestions []string) GenerationResult
}

// Generator is the LLM-backed QuestionGenerator.
type Generator struct {
	client llm.Client
	focus  FocusSelector
}

// NewGenerator wires a question generator to an LLM client. A nil selector
// falls back to the random one.
func NewGenerator(client llm.Client, focus FocusSelector) *Generator {
	if focus == nil {
		focus = NewRandomFocusSelector()
	}
	return &Generator{client: client, focus: focus}
}

// Generate builds a bounded prompt for the chosen focus area and requests a
// single short question.
func (g *Generator) Generate(ctx context.Context, resumeText string, priorQuestions []string) GenerationResult {
	focus := g.focus.Pick(priorQuestions)

	template := prompts.MustGet("interview.json", "next-question")
	prompt := prompts.Format(template, map[string]string{
		"FocusArea": focus,
		"Resume":    truncate(resumeText, resumeQuestionLimit),
	})

	text, err := g.client.GenerateContent(ctx, prompt, llm.TierLite)
	if err != nil {
		return GenerationResult{
			Text:     fmt.Sprintf("Error generating question: %v", err),
			Degraded: true,
			Err:      err,
		}
	}
	return GenerationResult{Text: strings.TrimSpace(text)}
}

// truncate bounds s to at most n bytes.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
