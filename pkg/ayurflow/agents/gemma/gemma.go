// Package gemma provides an LLM-backed guidance collaborator that calls a
// MedGemma/Gemini model through the Google GenAI API. It is a drop-in
// replacement for the rule-based guidance stage: model failures and
// malformed completions surface as ordinary collaborator errors and are
// contained by the stage adapter.
package gemma

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/ayur-ai/ayurflow/pkg/ayurflow"
	"github.com/ayur-ai/ayurflow/pkg/ayurflow/pipeline"
)

const defaultModel = "gemma-3-27b-it"

// Client wraps the GenAI client with the guidance prompt and output
// parsing. One Client may serve concurrent pipeline invocations; it holds
// no per-invocation state.
type Client struct {
	client *genai.Client
	model  string
}

func NewClient(ctx context.Context, apiKey, model string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemma: API key is required")
	}
	if model == "" {
		model = defaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("gemma: create client: %w", err)
	}
	return &Client{client: client, model: model}, nil
}

// Guidance returns a stage-3 collaborator backed by the model.
func (c *Client) Guidance() pipeline.Collaborator {
	return func(ctx context.Context, rec *ayurflow.Record) (any, error) {
		prompt := buildPrompt(rec)

		resp, err := c.client.Models.GenerateContent(ctx,
			c.model,
			genai.Text(prompt),
			&genai.GenerateContentConfig{
				Temperature:      genai.Ptr[float32](0),
				ResponseMIMEType: "application/json",
			},
		)
		if err != nil {
			return nil, fmt.Errorf("gemma: generate guidance: %w", err)
		}

		return parseGuidance(resp.Text())
	}
}

// buildPrompt renders the structured consultation context into the model
// instruction. It asks for strict JSON matching the guidance schema.
func buildPrompt(rec *ayurflow.Record) string {
	symptoms := strings.Join(rec.StructuredSymptoms.GetStrings(ayurflow.KeySymptoms), ", ")
	if symptoms == "" {
		symptoms = "general wellness"
	}
	dosha := rec.DoshaAnalysis.GetString(ayurflow.KeyPrimaryDosha)
	if dosha == "" {
		dosha = "Unknown"
	}

	return fmt.Sprintf(`You are an Ayurvedic clinical assistant producing educational wellness guidance.

Patient presentation: %s
Identified symptoms: %s
Primary dosha imbalance: %s
Severity: %s

Respond with a single JSON object and nothing else, using exactly these keys,
each holding an array of short recommendation strings:
{"lifestyle": [], "diet": [], "herbs": [], "exercise": [], "when_to_consult": []}

Never claim to cure, never advise stopping prescribed medication.`,
		rec.RawInput,
		symptoms,
		dosha,
		rec.StructuredSymptoms.GetString(ayurflow.KeySeverity),
	)
}

// parseGuidance decodes the model completion into the guidance payload.
// A completion that is not valid JSON, or that misses every schema key,
// is a collaborator failure.
func parseGuidance(text string) (ayurflow.Payload, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")

	var decoded map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &decoded); err != nil {
		return nil, fmt.Errorf("gemma: malformed completion: %w", err)
	}

	payload := ayurflow.Payload{}
	keys := []string{
		ayurflow.KeyLifestyle, ayurflow.KeyDiet, ayurflow.KeyHerbs,
		ayurflow.KeyExercise, ayurflow.KeyWhenToConsult,
	}
	found := false
	for _, key := range keys {
		items := ayurflow.Payload(decoded).GetStrings(key)
		if items == nil {
			items = []string{}
		} else if len(items) > 0 {
			found = true
		}
		payload[key] = items
	}
	if !found {
		return nil, fmt.Errorf("gemma: completion carried no guidance content")
	}
	return payload, nil
}
