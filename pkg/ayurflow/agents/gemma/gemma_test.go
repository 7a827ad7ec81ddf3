package gemma

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayur-ai/ayurflow/pkg/ayurflow"
)

func TestNewClientRequiresAPIKey(t *testing.T) {
	t.Parallel()

	_, err := NewClient(context.Background(), "", "gemma-3-27b-it")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key")
}

func TestBuildPrompt(t *testing.T) {
	t.Parallel()

	rec := ayurflow.NewRecord("dry skin and anxiety for months")
	rec.Apply(ayurflow.Update{
		ayurflow.FieldSymptoms: ayurflow.Payload{
			ayurflow.KeySymptoms: []string{"dry", "anxiety"},
			ayurflow.KeySeverity: "moderate",
		},
		ayurflow.FieldDosha: ayurflow.Payload{
			ayurflow.KeyPrimaryDosha: "Vata",
		},
	})

	prompt := buildPrompt(rec)

	assert.Contains(t, prompt, "dry skin and anxiety for months")
	assert.Contains(t, prompt, "dry, anxiety")
	assert.Contains(t, prompt, "Vata")
	assert.Contains(t, prompt, `"when_to_consult"`)
}

func TestBuildPromptDefaults(t *testing.T) {
	t.Parallel()

	prompt := buildPrompt(ayurflow.NewRecord("some input"))
	assert.Contains(t, prompt, "general wellness")
	assert.Contains(t, prompt, "Unknown")
}

func TestParseGuidance(t *testing.T) {
	t.Parallel()

	payload, err := parseGuidance(`{
		"lifestyle": ["keep a routine"],
		"diet": ["warm soups"],
		"herbs": [],
		"exercise": ["gentle yoga"],
		"when_to_consult": ["if symptoms persist"]
	}`)
	require.NoError(t, err)

	assert.Equal(t, []string{"keep a routine"}, payload.GetStrings(ayurflow.KeyLifestyle))
	assert.Equal(t, []string{"warm soups"}, payload.GetStrings(ayurflow.KeyDiet))
	assert.Empty(t, payload.GetStrings(ayurflow.KeyHerbs))
}

func TestParseGuidanceStripsCodeFence(t *testing.T) {
	t.Parallel()

	payload, err := parseGuidance("```json\n{\"diet\": [\"warm soups\"]}\n```")
	require.NoError(t, err)
	assert.Equal(t, []string{"warm soups"}, payload.GetStrings(ayurflow.KeyDiet))
}

func TestParseGuidanceMalformed(t *testing.T) {
	t.Parallel()

	_, err := parseGuidance("I'm sorry, I cannot help with that.")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "malformed")
}

func TestParseGuidanceEmptyCompletion(t *testing.T) {
	t.Parallel()

	_, err := parseGuidance(`{"unrelated": true}`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no guidance content")
}
