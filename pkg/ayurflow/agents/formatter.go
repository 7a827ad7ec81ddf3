package agents

import (
	"context"
	"strings"

	"github.com/ayur-ai/ayurflow/pkg/ayurflow"
	"github.com/ayur-ai/ayurflow/pkg/ayurflow/pipeline"
)

// Disclaimer is appended to every response the pipeline produces,
// regardless of gate decision or upstream failures.
const Disclaimer = `IMPORTANT MEDICAL DISCLAIMER

This system provides educational wellness information only. It is NOT a
medical device and does NOT diagnose diseases, prescribe treatments,
replace professional medical advice, or guarantee health outcomes.

Always consult qualified healthcare providers, inform your doctor of any
new recommendations, and seek immediate care for emergencies.`

const divider = "============================================================"

// Formatter returns the stage-5 collaborator. It assembles the final
// patient-facing text from the completed Record, branching strictly on
// the safety gate. Missing, malformed, or error-flagged inputs are treated
// as unsafe: when in doubt nothing from the guidance field is disclosed.
func Formatter(disclaimer string) pipeline.Collaborator {
	if disclaimer == "" {
		disclaimer = Disclaimer
	}
	return func(ctx context.Context, rec *ayurflow.Record) (any, error) {
		var b strings.Builder

		b.WriteString(divider + "\n")
		b.WriteString("AYURVEDA AI HEALTH GUIDANCE\n")
		b.WriteString(divider + "\n\n")

		safe := rec.SafetyFlags.SafeToRecommend()

		if safe {
			writeSymptomSummary(&b, rec.StructuredSymptoms)
			writeDoshaSummary(&b, rec.DoshaAnalysis)
		}
		writeSafetySummary(&b, rec.SafetyFlags, safe)

		if safe && !rec.Guidance.IsError() {
			writeGuidance(&b, rec.Guidance)
		} else {
			b.WriteString("RECOMMENDATIONS WITHHELD DUE TO SAFETY CONCERNS\n\n")
		}

		if consult := rec.SafetyFlags.GetString(ayurflow.KeyMandatoryConsultation); consult != "" {
			b.WriteString("WHEN TO CONSULT:\n  " + consult + "\n\n")
		}

		b.WriteString(divider + "\n")
		b.WriteString(disclaimer + "\n")
		b.WriteString(divider + "\n")

		return b.String(), nil
	}
}

func writeSymptomSummary(b *strings.Builder, symptoms ayurflow.Payload) {
	if symptoms.IsError() {
		return
	}
	items := symptoms.GetStrings(ayurflow.KeySymptoms)
	if len(items) == 0 {
		return
	}
	b.WriteString("SYMPTOMS IDENTIFIED:\n")
	for _, s := range items {
		b.WriteString("  - " + s + "\n")
	}
	if sev := symptoms.GetString(ayurflow.KeySeverity); sev != "" {
		b.WriteString("  Severity: " + sev + "\n")
	}
	if dur := symptoms.GetString(ayurflow.KeyDuration); dur != "" {
		b.WriteString("  Duration: " + dur + "\n")
	}
	b.WriteString("\n")
}

func writeDoshaSummary(b *strings.Builder, dosha ayurflow.Payload) {
	if dosha.IsError() || dosha.IsEmpty() {
		return
	}
	b.WriteString("DOSHA ANALYSIS:\n")
	b.WriteString("  Primary Dosha: " + orUnknown(dosha.GetString(ayurflow.KeyPrimaryDosha)) + "\n")
	if sec := dosha.GetString(ayurflow.KeySecondaryDosha); sec != "" && sec != "None" {
		b.WriteString("  Secondary Dosha: " + sec + "\n")
	}
	b.WriteString("  Confidence: " + orUnknown(dosha.GetString(ayurflow.KeyConfidence)) + "\n")
	if reason := dosha.GetString(ayurflow.KeyReasoning); reason != "" {
		b.WriteString("  Reasoning: " + reason + "\n")
	}
	b.WriteString("\n")
}

func writeSafetySummary(b *strings.Builder, flags ayurflow.Payload, safe bool) {
	b.WriteString("SAFETY ASSESSMENT:\n")
	risk := flags.GetString(ayurflow.KeyRiskLevel)
	if flags.IsError() || risk == "" {
		risk = "unknown"
	}
	b.WriteString("  Risk Level: " + risk + "\n")
	if safe {
		b.WriteString("  Safe to Proceed: Yes\n")
	} else {
		b.WriteString("  Safe to Proceed: No - Consult Doctor\n")
	}
	for _, w := range flags.GetStrings(ayurflow.KeyWarnings) {
		b.WriteString("  Warning: " + w + "\n")
	}
	for _, c := range flags.GetStrings(ayurflow.KeyContraindications) {
		b.WriteString("  Contraindication: " + c + "\n")
	}
	b.WriteString("\n")
}

func writeGuidance(b *strings.Builder, guidance ayurflow.Payload) {
	sections := []struct {
		key   string
		title string
	}{
		{ayurflow.KeyLifestyle, "LIFESTYLE RECOMMENDATIONS"},
		{ayurflow.KeyDiet, "DIETARY RECOMMENDATIONS"},
		{ayurflow.KeyHerbs, "HERBAL SUPPORT (for learning)"},
		{ayurflow.KeyExercise, "EXERCISE RECOMMENDATIONS"},
		{ayurflow.KeyWhenToConsult, "CONSULT A PRACTITIONER IF"},
	}
	for _, section := range sections {
		items := guidance.GetStrings(section.key)
		if len(items) == 0 {
			continue
		}
		b.WriteString(section.title + ":\n")
		for _, item := range items {
			b.WriteString("  - " + item + "\n")
		}
		b.WriteString("\n")
	}
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}
