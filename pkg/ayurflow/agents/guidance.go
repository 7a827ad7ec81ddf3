package agents

import (
	"context"

	"github.com/ayur-ai/ayurflow/pkg/ayurflow"
	"github.com/ayur-ai/ayurflow/pkg/ayurflow/pipeline"
)

// treatment bundles the per-dosha recommendation tables. Content follows
// classical pacification principles: warm/grounding for vata, cooling for
// pitta, light/stimulating for kapha.
type treatment struct {
	lifestyle []string
	diet      []string
	herbs     []string
	exercise  []string
}

var treatments = map[string]treatment{
	"Vata": {
		lifestyle: []string{
			"Keep a regular daily routine with fixed meal and sleep times",
			"Daily warm sesame oil self-massage (abhyanga)",
			"Limit travel, screens and overstimulation in the evening",
		},
		diet: []string{
			"Favour warm, moist, grounding foods such as soups and stews",
			"Use warming spices: ginger, cumin, cinnamon",
			"Avoid cold, dry and raw foods",
		},
		herbs:    []string{"Ashwagandha", "Shatavari", "Triphala"},
		exercise: []string{"Gentle yoga", "Pranayama breathing", "Yoga Nidra relaxation"},
	},
	"Pitta": {
		lifestyle: []string{
			"Avoid excessive heat, sun exposure and overwork",
			"Practise calming meditation daily",
			"Cool coconut oil massage",
		},
		diet: []string{
			"Favour cooling foods: sweet fruit, leafy greens, coconut",
			"Reduce spicy, oily, fermented and fried foods",
			"Avoid alcohol and excess caffeine",
		},
		herbs:    []string{"Brahmi", "Guduchi", "Neem", "Amalaki"},
		exercise: []string{"Moon salutation", "Sitali cooling breath", "Swimming"},
	},
	"Kapha": {
		lifestyle: []string{
			"Rise early and avoid daytime sleep",
			"Dry brushing before bathing",
			"Seek variety and stimulation in daily activity",
		},
		diet: []string{
			"Favour light, warm, lightly spiced meals",
			"Use pungent spices: black pepper, ginger, turmeric",
			"Avoid heavy, cold, sweet and oily foods",
		},
		herbs:    []string{"Trikatu", "Guggul", "Punarnava", "Ginger"},
		exercise: []string{"Sun salutation", "Kapalbhati breathing", "Vigorous vinyasa or brisk walking"},
	},
}

var whenToConsult = []string{
	"Symptoms persist beyond two weeks despite lifestyle changes",
	"Symptoms worsen or new symptoms appear",
	"You are pregnant, breastfeeding, or managing a chronic condition",
	"You take prescription medication that could interact with herbs",
}

// Guidance returns the built-in stage-3 collaborator: table-driven
// recommendations keyed by the primary dosha. Unknown or missing dosha
// assessments fall back to vata pacification, mirroring the most cautious
// classical default.
func Guidance() pipeline.Collaborator {
	return func(ctx context.Context, rec *ayurflow.Record) (any, error) {
		primary := rec.DoshaAnalysis.GetString(ayurflow.KeyPrimaryDosha)
		plan, ok := treatments[primary]
		if !ok {
			plan = treatments["Vata"]
		}

		return ayurflow.Payload{
			ayurflow.KeyLifestyle:     plan.lifestyle,
			ayurflow.KeyDiet:          plan.diet,
			ayurflow.KeyHerbs:         plan.herbs,
			ayurflow.KeyExercise:      plan.exercise,
			ayurflow.KeyWhenToConsult: whenToConsult,
		}, nil
	}
}
