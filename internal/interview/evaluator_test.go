package interview

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluator_PromptContainsQuestionAnswerAndBullets(t *testing.T) {
	client := &fakeLLM{text: "- strength\n- improvement\n- tip"}
	eval := NewEvaluator(client)

	result := eval.Evaluate(context.Background(), "resume text",
		"What did you build?", "I built a payment system.")
	require.False(t, result.Degraded)
	assert.Equal(t, "- strength\n- improvement\n- tip", result.Text)

	require.Len(t, client.prompts, 1)
	prompt := client.prompts[0]
	assert.Contains(t, prompt, "Question: What did you build?")
	assert.Contains(t, prompt, "Answer: I built a payment system.")
	assert.Contains(t, prompt, "One strength")
	assert.Contains(t, prompt, "One improvement area")
	assert.Contains(t, prompt, "One actionable tip")
}

func TestEvaluator_ResumePrefixBounded(t *testing.T) {
	longResume := strings.Repeat("a", 999) + "XY" + strings.Repeat("z", 500)
	client := &fakeLLM{text: "fb"}
	eval := NewEvaluator(client)

	eval.Evaluate(context.Background(), longResume, "q", "a")

	require.Len(t, client.prompts, 1)
	assert.Contains(t, client.prompts[0], longResume[:1000])
	assert.NotContains(t, client.prompts[0], "XYz")
}

func TestEvaluator_DegradesToContentOnFailure(t *testing.T) {
	cause := errors.New("model overloaded")
	client := &fakeLLM{err: cause}
	eval := NewEvaluator(client)

	result := eval.Evaluate(context.Background(), "resume", "q", "a")
	assert.True(t, result.Degraded)
	assert.ErrorIs(t, result.Err, cause)
	assert.True(t, strings.HasPrefix(result.Text, "Error analyzing response:"))
}
