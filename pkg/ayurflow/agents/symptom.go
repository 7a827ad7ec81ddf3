package agents

import (
	"context"
	"strings"

	"github.com/ayur-ai/ayurflow/pkg/ayurflow"
	"github.com/ayur-ai/ayurflow/pkg/ayurflow/pipeline"
)

// doshaKeywords maps each dosha to the symptom vocabulary that indicates
// its imbalance. Order of the doshas slice fixes every tie-break.
var doshas = []string{"vata", "pitta", "kapha"}

var doshaKeywords = map[string][]string{
	"vata": {"dry", "cold", "anxiety", "pain", "constipation", "insomnia",
		"joint pain", "irregular", "fatigue", "thin", "restless", "cracking"},
	"pitta": {"inflammation", "fever", "acidity", "anger", "rash", "burning",
		"infection", "hypertension", "ulcer", "hot", "heartburn", "irritability"},
	"kapha": {"obesity", "mucus", "congestion", "lethargy", "swelling",
		"diabetes", "cough", "weight gain", "slow", "heaviness", "drowsiness"},
}

// qualities are the gunas scanned out of the patient's own wording.
var qualities = []string{
	"dry", "oily", "hot", "cold", "heavy", "light", "rough", "smooth",
	"sharp", "dull", "burning", "stiff",
}

var severityMarkers = map[string][]string{
	"severe":   {"severe", "unbearable", "extreme", "intense", "worst"},
	"mild":     {"mild", "slight", "occasional", "minor"},
	"moderate": {"moderate", "persistent", "recurring"},
}

var durationMarkers = []struct {
	word     string
	duration string
}{
	{"year", "chronic"},
	{"month", "long-standing"},
	{"week", "recent"},
	{"day", "acute"},
	{"today", "acute"},
}

// Symptom returns the stage-1 collaborator. It parses the raw patient text
// into {symptoms, properties, severity, duration}. Empty input is not an
// error: the collaborator returns its defined empty-input shape and lets
// downstream stages proceed.
func Symptom() pipeline.Collaborator {
	return func(ctx context.Context, rec *ayurflow.Record) (any, error) {
		text := strings.ToLower(rec.RawInput)

		symptoms := []string{}
		seen := map[string]bool{}
		for _, dosha := range doshas {
			for _, kw := range doshaKeywords[dosha] {
				if strings.Contains(text, kw) && !seen[kw] {
					seen[kw] = true
					symptoms = append(symptoms, kw)
				}
			}
		}

		properties := []string{}
		for _, q := range qualities {
			if strings.Contains(text, q) {
				properties = append(properties, q)
			}
		}

		return ayurflow.Payload{
			ayurflow.KeySymptoms:   symptoms,
			ayurflow.KeyProperties: properties,
			ayurflow.KeySeverity:   classifySeverity(text, symptoms),
			ayurflow.KeyDuration:   classifyDuration(text),
		}, nil
	}
}

func classifySeverity(text string, symptoms []string) string {
	if strings.TrimSpace(text) == "" || len(symptoms) == 0 {
		return "unknown"
	}
	for _, level := range []string{"severe", "mild", "moderate"} {
		for _, marker := range severityMarkers[level] {
			if strings.Contains(text, marker) {
				return level
			}
		}
	}
	return "moderate"
}

func classifyDuration(text string) string {
	for _, m := range durationMarkers {
		if strings.Contains(text, m.word) {
			return m.duration
		}
	}
	return "unspecified"
}
