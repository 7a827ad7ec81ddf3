package agents

import (
	"context"
	"strings"

	"github.com/ayur-ai/ayurflow/pkg/ayurflow"
	"github.com/ayur-ai/ayurflow/pkg/ayurflow/pipeline"
)

// redFlags are emergency indicators in the patient's own words. Any match
// blocks recommendations outright.
var redFlags = []string{
	"chest pain", "difficulty breathing", "shortness of breath",
	"severe bleeding", "blood in", "coughing blood", "unconscious",
	"suicide", "suicidal", "self-harm", "seizure", "stroke",
	"sudden numbness", "severe allergic",
}

// cautions lower the bar to a medium risk tier and attach warnings without
// blocking: the herb tables interact with these conditions and medications.
var cautions = map[string]string{
	"pregnan":        "Pregnancy: many herbs (including Ashwagandha and Trikatu) are not established as safe in pregnancy",
	"breastfeed":     "Breastfeeding: consult a practitioner before taking any herbal preparation",
	"diabetes":       "Diabetes: herbs such as Guduchi may affect blood sugar alongside medication",
	"blood pressure": "Blood pressure condition: pungent herbs and vigorous practice can affect blood pressure",
	"warfarin":       "Warfarin: several herbs alter clotting and interact with anticoagulants",
	"insulin":        "Insulin: herbal preparations may potentiate glucose-lowering effects",
	"kidney":         "Kidney condition: verify herb dosing with a physician",
	"liver":          "Liver condition: verify herb dosing with a physician",
	"heart":          "Heart condition: clear any new exercise or herb regimen with a cardiologist",
}

// overconfident claims must never appear in disclosed guidance; the scan
// mirrors the output scrubbing the original safety layer performed.
var overconfident = []string{"cure", "guaranteed", "100% effective", "stop your medication", "replace your doctor"}

var whenToStop = []string{
	"Stop immediately if symptoms worsen after starting a recommendation",
	"Stop any herb that causes nausea, rash, or palpitations",
	"Seek emergency care for chest pain, breathing difficulty, or heavy bleeding",
}

const emergencyConsultation = "Seek immediate medical attention. The described symptoms may indicate a medical emergency and are outside the scope of wellness guidance."

// Safety returns the stage-4 collaborator, the pipeline's gate. It reads
// the raw patient context and the generated guidance and produces the
// authoritative safe_to_recommend decision. When guidance itself failed,
// the gate closes rather than vouching for content it never saw.
func Safety() pipeline.Collaborator {
	return func(ctx context.Context, rec *ayurflow.Record) (any, error) {
		text := strings.ToLower(rec.RawInput)

		warnings := []string{}
		contraindications := []string{}
		risk := "low"
		safe := true
		consultation := ""

		for _, flag := range redFlags {
			if strings.Contains(text, flag) {
				risk = "high"
				safe = false
				consultation = emergencyConsultation
				warnings = append(warnings, "Emergency indicator detected: "+flag)
			}
		}

		for _, c := range cautionList {
			if strings.Contains(text, c.marker) {
				if risk == "low" {
					risk = "medium"
				}
				contraindications = append(contraindications, c.note)
			}
		}

		if rec.Guidance.IsError() {
			safe = false
			if risk == "low" {
				risk = "high"
			}
			warnings = append(warnings, "Guidance could not be generated; recommendations are withheld")
			if consultation == "" {
				consultation = "Consult a qualified practitioner directly; automated guidance was unavailable for this request."
			}
		} else {
			for _, claim := range overconfident {
				if guidanceContains(rec.Guidance, claim) {
					safe = false
					risk = "high"
					warnings = append(warnings, "Guidance contained a prohibited claim: "+claim)
				}
			}
		}

		return ayurflow.Payload{
			ayurflow.KeyRiskLevel:             risk,
			ayurflow.KeySafeToRecommend:       safe,
			ayurflow.KeyWarnings:              warnings,
			ayurflow.KeyContraindications:     contraindications,
			ayurflow.KeyMandatoryConsultation: consultation,
			ayurflow.KeyWhenToStop:            whenToStop,
		}, nil
	}
}

// cautionList fixes the iteration order of the cautions map.
var cautionList = buildCautionList()

type caution struct {
	marker string
	note   string
}

func buildCautionList() []caution {
	markers := []string{
		"pregnan", "breastfeed", "diabetes", "blood pressure",
		"warfarin", "insulin", "kidney", "liver", "heart",
	}
	out := make([]caution, 0, len(markers))
	for _, m := range markers {
		out = append(out, caution{marker: m, note: cautions[m]})
	}
	return out
}

func guidanceContains(guidance ayurflow.Payload, claim string) bool {
	for _, key := range []string{
		ayurflow.KeyLifestyle, ayurflow.KeyDiet,
		ayurflow.KeyHerbs, ayurflow.KeyExercise,
	} {
		for _, item := range guidance.GetStrings(key) {
			if strings.Contains(strings.ToLower(item), claim) {
				return true
			}
		}
	}
	return false
}
