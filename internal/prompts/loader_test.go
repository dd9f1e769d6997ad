package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_ValidPrompt(t *testing.T) {
	ClearCache()

	prompt, err := Get("screening.json", "evaluate-resume")
	require.NoError(t, err)
	assert.NotEmpty(t, prompt)
	assert.Contains(t, prompt, "{{.ResumeText}}")
}

func TestGet_AllScreeningPrompts(t *testing.T) {
	ClearCache()

	keys, err := List("screening.json")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		"evaluate-resume",
		"evaluate-answers",
		"evaluate-answer-set",
		"evaluate-interview",
	}, keys)
}

func TestGet_InvalidFile(t *testing.T) {
	ClearCache()

	_, err := Get("nonexistent.json", "some-key")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read prompt file")
}

func TestGet_InvalidKey(t *testing.T) {
	ClearCache()

	_, err := Get("screening.json", "nonexistent-key")
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
	template := "Score {{.JobTitle}} using {{.Transcript}}"
	result := Format(template, map[string]string{
		"JobTitle":   "Backend Engineer",
		"Transcript": "hello",
	})
	assert.Equal(t, "Score Backend Engineer using hello", result)
}

func TestFormat_MissingKeyLeftIntact(t *testing.T) {
	template := "Hello {{.Name}}"
	result := Format(template, map[string]string{})
	assert.Equal(t, "Hello {{.Name}}", result)
}
