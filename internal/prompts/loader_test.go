package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_ValidPrompt(t *testing.T) {
	ClearCache()

	prompt, err := Get("interview.json", "next-question")
	require.NoError(t, err)
	assert.NotEmpty(t, prompt)
	assert.Contains(t, prompt, "technical interviewer")
	assert.Contains(t, prompt, "{{.FocusArea}}")
}

func TestGet_InvalidFile(t *testing.T) {
	ClearCache()

	_, err := Get("nonexistent.json", "some-key")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read prompt file")
}

func TestGet_InvalidKey(t *testing.T) {
	ClearCache()

	_, err := Get("interview.json", "nonexistent-key")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestMustGet_Panics(t *testing.T) {
	ClearCache()

	assert.Panics(t, func() {
		MustGet("nonexistent.json", "some-key")
	})
}

func TestFormat(t *testing.T) {
	out := Format("Focus on {{.FocusArea}}. Resume: {{.Resume}}", map[string]string{
		"FocusArea": "projects",
		"Resume":    "ten years of Go",
	})
	assert.Equal(t, "Focus on projects. Resume: ten years of Go", out)
}

func TestFormat_MissingKeyLeftIntact(t *testing.T) {
	out := Format("Question: {{.Question}}", map[string]string{})
	assert.Equal(t, "Question: {{.Question}}", out)
}
