package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_ValidPrompt(t *testing.T) {
	ClearCache()

	prompt, err := Get("discovery.json", "select-best-urls")
	require.NoError(t, err)
	assert.NotEmpty(t, prompt)
	assert.Contains(t, prompt, "{{.Candidates}}")
}

func TestGet_InvalidFile(t *testing.T) {
	ClearCache()

	_, err := Get("nonexistent.json", "some-key")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read prompt file")
}

func TestGet_InvalidKey(t *testing.T) {
	ClearCache()

	_, err := Get("discovery.json", "nonexistent-key")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestMustGet_Panics(t *testing.T) {
	ClearCache()

	assert.Panics(t, func() {
		MustGet("nonexistent.json", "some-key")
	})
}

func TestFormat_ReplacesPlaceholders(t *testing.T) {
	template := "Research {{.Domain}} for intent {{.Intent}}"
	result := Format(template, map[string]string{
		"Domain": "stripe.com",
		"Intent": "careers",
	})
	assert.Equal(t, "Research stripe.com for intent careers", result)
}

func TestList_ReturnsKeys(t *testing.T) {
	ClearCache()

	keys, err := List("report.json")
	require.NoError(t, err)
	assert.Contains(t, keys, "prep-report")
}
