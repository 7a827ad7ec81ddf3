package agents

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayur-ai/ayurflow/pkg/ayurflow"
	"github.com/ayur-ai/ayurflow/pkg/ayurflow/pipeline"
)

func TestDefaultAssemblesValidPipeline(t *testing.T) {
	t.Parallel()

	engine, err := pipeline.New(Default(Options{}))
	require.NoError(t, err)
	require.NotNil(t, engine)
}

func TestEndToEndVataConsultation(t *testing.T) {
	t.Parallel()

	engine, err := pipeline.New(Default(Options{}))
	require.NoError(t, err)

	rec := engine.Run(context.Background(),
		"I have had dry skin, joint pain and insomnia for three months, with a lot of anxiety")

	assert.Equal(t, "Vata", rec.DoshaAnalysis.GetString(ayurflow.KeyPrimaryDosha))
	assert.True(t, rec.SafetyFlags.SafeToRecommend())
	assert.Contains(t, rec.FinalResponse, "Ashwagandha")
	assert.Contains(t, rec.FinalResponse, "IMPORTANT MEDICAL DISCLAIMER")
	for _, out := range rec.Trace {
		assert.True(t, out.IsSuccess(), "stage %s", out.Stage())
	}
}

func TestEndToEndEmergencyInputFailsClosed(t *testing.T) {
	t.Parallel()

	engine, err := pipeline.New(Default(Options{}))
	require.NoError(t, err)

	rec := engine.Run(context.Background(),
		"burning chest pain and shortness of breath since this morning")

	assert.False(t, rec.SafetyFlags.SafeToRecommend())
	assert.Equal(t, "high", rec.SafetyFlags.GetString(ayurflow.KeyRiskLevel))
	assert.Contains(t, rec.FinalResponse, "RECOMMENDATIONS WITHHELD")
	assert.Contains(t, rec.FinalResponse, "immediate medical attention")
	// Guidance was computed but must not be disclosed.
	assert.False(t, rec.Guidance.IsEmpty())
	assert.NotContains(t, rec.FinalResponse, "LIFESTYLE RECOMMENDATIONS")
}

func TestEndToEndEmptyInput(t *testing.T) {
	t.Parallel()

	engine, err := pipeline.New(Default(Options{}))
	require.NoError(t, err)

	rec := engine.Run(context.Background(), "")

	assert.NotEmpty(t, rec.FinalResponse)
	assert.Contains(t, rec.FinalResponse, "IMPORTANT MEDICAL DISCLAIMER")
	for _, f := range ayurflow.StageFields {
		assert.True(t, rec.Written(f), "field %s", f)
	}
}

func TestEndToEndGuidanceOverride(t *testing.T) {
	t.Parallel()

	custom := func(ctx context.Context, rec *ayurflow.Record) (any, error) {
		return ayurflow.Payload{
			ayurflow.KeyLifestyle: []string{"custom model advice"},
		}, nil
	}
	engine, err := pipeline.New(Default(Options{Guidance: custom}))
	require.NoError(t, err)

	rec := engine.Run(context.Background(), "mild dry skin")
	assert.Contains(t, rec.FinalResponse, "custom model advice")
}

func TestEndToEndDeterminism(t *testing.T) {
	t.Parallel()

	engine, err := pipeline.New(Default(Options{}))
	require.NoError(t, err)

	input := "acidity and burning heartburn for weeks, lots of anger"
	a := engine.Run(context.Background(), input)
	b := engine.Run(context.Background(), input)

	assert.Equal(t, a.FinalResponse, b.FinalResponse)
	assert.Equal(t, a.DoshaAnalysis, b.DoshaAnalysis)
}
