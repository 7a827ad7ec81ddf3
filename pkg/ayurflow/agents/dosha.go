package agents

import (
	"context"
	"fmt"
	"strings"

	"github.com/ayur-ai/ayurflow/pkg/ayurflow"
	"github.com/ayur-ai/ayurflow/pkg/ayurflow/pipeline"
)

// Dosha returns the stage-2 collaborator. It scores vata/pitta/kapha from
// the structured symptoms and properties and names the primary imbalance.
// An errored or empty upstream payload simply yields zero scores and a
// low-confidence default; assessment never fails on missing input.
func Dosha() pipeline.Collaborator {
	return func(ctx context.Context, rec *ayurflow.Record) (any, error) {
		structured := rec.StructuredSymptoms
		var terms []string
		terms = append(terms, structured.GetStrings(ayurflow.KeySymptoms)...)
		terms = append(terms, structured.GetStrings(ayurflow.KeyProperties)...)

		scores := map[string]float64{}
		for _, dosha := range doshas {
			for _, kw := range doshaKeywords[dosha] {
				for _, term := range terms {
					if strings.Contains(term, kw) || strings.Contains(kw, term) {
						scores[dosha]++
						break
					}
				}
			}
		}

		primary, secondary := rankDoshas(scores)
		total := scores["vata"] + scores["pitta"] + scores["kapha"]

		return ayurflow.Payload{
			ayurflow.KeyPrimaryDosha:   capitalize(primary),
			ayurflow.KeySecondaryDosha: capitalize(secondary),
			ayurflow.KeyVataScore:      scores["vata"],
			ayurflow.KeyPittaScore:     scores["pitta"],
			ayurflow.KeyKaphaScore:     scores["kapha"],
			ayurflow.KeyConfidence:     confidence(scores, primary, total),
			ayurflow.KeyReasoning: fmt.Sprintf(
				"matched %d indicator(s): vata=%.0f pitta=%.0f kapha=%.0f",
				int(total), scores["vata"], scores["pitta"], scores["kapha"]),
		}, nil
	}
}

// rankDoshas picks the primary and secondary imbalance. Ties resolve in
// the fixed vata, pitta, kapha order so assessment stays deterministic.
func rankDoshas(scores map[string]float64) (primary, secondary string) {
	primary = doshas[0]
	for _, d := range doshas[1:] {
		if scores[d] > scores[primary] {
			primary = d
		}
	}
	secondary = "none"
	best := 0.0
	for _, d := range doshas {
		if d != primary && scores[d] > best {
			best = scores[d]
			secondary = d
		}
	}
	return primary, secondary
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func confidence(scores map[string]float64, primary string, total float64) string {
	if total == 0 {
		return "low"
	}
	margin := scores[primary]
	for _, d := range doshas {
		if d != primary && scores[primary]-scores[d] < margin {
			margin = scores[primary] - scores[d]
		}
	}
	if margin >= 2 {
		return "high"
	}
	return "medium"
}
