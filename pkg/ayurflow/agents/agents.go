package agents

import (
	"github.com/ayur-ai/ayurflow/pkg/ayurflow"
	"github.com/ayur-ai/ayurflow/pkg/ayurflow/pipeline"
)

// Stage names in canonical order.
const (
	StageSymptom   = "symptom"
	StageDosha     = "dosha"
	StageGuidance  = "guidance"
	StageSafety    = "safety"
	StageFormatter = "formatter"
)

// Options customises the default stage wiring.
type Options struct {
	// Disclaimer overrides the standard disclaimer text when non-empty.
	Disclaimer string
	// Guidance replaces the built-in rule-based guidance collaborator,
	// typically with an LLM-backed one. The adapter contract is unchanged:
	// failures of the replacement degrade, they never propagate.
	Guidance pipeline.Collaborator
}

// Default returns the five stage adapters in canonical order, ready to be
// handed to pipeline.New.
func Default(opts Options) []*pipeline.Adapter {
	guidance := opts.Guidance
	if guidance == nil {
		guidance = Guidance()
	}
	return []*pipeline.Adapter{
		pipeline.NewAdapter(StageSymptom, ayurflow.FieldSymptoms, Symptom()),
		pipeline.NewAdapter(StageDosha, ayurflow.FieldDosha, Dosha()),
		pipeline.NewAdapter(StageGuidance, ayurflow.FieldGuidance, guidance),
		pipeline.NewAdapter(StageSafety, ayurflow.FieldSafety, Safety()),
		pipeline.NewAdapter(StageFormatter, ayurflow.FieldResponse, Formatter(opts.Disclaimer)),
	}
}
