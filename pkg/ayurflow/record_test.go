package ayurflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRecordInitialisation(t *testing.T) {
	t.Parallel()

	rec := NewRecord("dry skin and anxiety")

	assert.NotEqual(t, rec.ID.String(), "00000000-0000-0000-0000-000000000000")
	assert.Equal(t, "dry skin and anxiety", rec.RawInput)

	// All mapping fields exist from creation as empty, never nil-absent.
	for _, f := range []Field{FieldSymptoms, FieldDosha, FieldGuidance, FieldSafety} {
		require.NotNil(t, rec.FieldPayload(f), "field %s", f)
		assert.True(t, rec.FieldPayload(f).IsEmpty())
		assert.False(t, rec.Written(f))
	}
	assert.Empty(t, rec.FinalResponse)
	assert.False(t, rec.Written(FieldResponse))
}

func TestApplyWriteOnce(t *testing.T) {
	t.Parallel()

	rec := NewRecord("input")

	first := Payload{KeySymptoms: []string{"dry"}}
	rec.Apply(Update{FieldSymptoms: first})
	require.True(t, rec.Written(FieldSymptoms))
	assert.Equal(t, first, rec.StructuredSymptoms)

	// A second write to the same field is a no-op.
	rec.Apply(Update{FieldSymptoms: Payload{KeySymptoms: []string{"hot"}}})
	assert.Equal(t, first, rec.StructuredSymptoms)

	rec.Apply(Update{FieldResponse: "final text"})
	rec.Apply(Update{FieldResponse: "overwritten"})
	assert.Equal(t, "final text", rec.FinalResponse)
}

func TestApplyIgnoresMalformedValues(t *testing.T) {
	t.Parallel()

	rec := NewRecord("input")

	rec.Apply(Update{FieldDosha: "not a payload"})
	assert.False(t, rec.Written(FieldDosha))

	rec.Apply(Update{FieldResponse: 42})
	assert.False(t, rec.Written(FieldResponse))

	// map[string]any is accepted as a payload encoding.
	rec.Apply(Update{FieldDosha: map[string]any{KeyPrimaryDosha: "Vata"}})
	assert.Equal(t, "Vata", rec.DoshaAnalysis.GetString(KeyPrimaryDosha))
}

func TestApplyNeverTouchesRawInput(t *testing.T) {
	t.Parallel()

	rec := NewRecord("original")
	rec.Apply(Update{FieldRawInput: "tampered"})
	assert.Equal(t, "original", rec.RawInput)
}

func TestAppendTrace(t *testing.T) {
	t.Parallel()

	rec := NewRecord("input")
	rec.AppendTrace(Succeeded("symptom", FieldSymptoms, 0))
	rec.AppendTrace(Failed("dosha", FieldDosha, 0, ErrCancelled))

	require.Len(t, rec.Trace, 2)
	assert.Equal(t, "symptom", rec.Trace[0].Stage())
	assert.True(t, rec.Trace[1].IsFailure())
}
