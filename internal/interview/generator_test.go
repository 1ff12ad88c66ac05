package interview

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/interview-coach/internal/llm"
)

// fakeLLM is an llm.Client that records prompts and returns a canned result.
type fakeLLM struct {
	text    string
	err     error
	prompts []string
	tiers   []llm.ModelTier
}

func (f *fakeLLM) GenerateContent(_ context.Context, prompt string, tier llm.ModelTier) (string, error) {
	f.prompts = append(f.prompts, prompt)
	f.tiers = append(f.tiers, tier)
	return f.text, f.err
}

func (f *fakeLLM) GetModel(llm.ModelTier) string { return "fake-model" }

func (f *fakeLLM) Close() error { return nil }

func fixedFocus(area string) FocusSelector {
	return FocusSelectorFunc(func(_ []string) string { return area })
}

func TestGenerator_PromptContainsFocusAndResume(t *testing.T) {
	client := &fakeLLM{text: " What did you build at your last job? "}
	gen := NewGenerator(client, fixedFocus("projects"))

	result := gen.Generate(context.Background(), "Built distributed systems in Go.", []string{SeedQuestion})
	require.False(t, result.Degraded)
	assert.Equal(t, "What did you build at your last job?", result.Text)

	require.Len(t, client.prompts, 1)
	prompt := client.prompts[0]
	assert.Contains(t, prompt, "Focus on projects")
	assert.Contains(t, prompt, "Built distributed systems in Go.")
	assert.Equal(t, llm.TierLite, client.tiers[0])
}

func TestGenerator_ResumePrefixBounded(t *testing.T) {
	longResume := strings.Repeat("a", 2999) + "XY" + strings.Repeat("z", 2000)
	client := &fakeLLM{text: "q"}
	gen := NewGenerator(client, fixedFocus("technical skills"))

	gen.Generate(context.Background(), longResume, nil)

	require.Len(t, client.prompts, 1)
	assert.Contains(t, client.prompts[0], longResume[:3000])
	assert.NotContains(t, client.prompts[0], "XYz")
}

func TestGenerator_DegradesToContentOnFailure(t *testing.T) {
	cause := errors.New("deadline exceeded")
	client := &fakeLLM{err: cause}
	gen := NewGenerator(client, nil)

	result := gen.Generate(context.Background(), "resume", nil)
	assert.True(t, result.Degraded)
	assert.ErrorIs(t, result.Err, cause)
	assert.True(t, strings.HasPrefix(result.Text, "Error generating question:"))
}

func TestRandomFocusSelector_PicksFromDeclaredSet(t *testing.T) {
	selector := NewRandomFocusSelector()
	for i := 0; i < 50; i++ {
		area := selector.Pick(nil)
		assert.Contains(t, FocusAreas, area)
	}
}
